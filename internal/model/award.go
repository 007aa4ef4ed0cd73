package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Record field names, shared by BSON documents, JSON and filters
const (
	FieldTeacher   = "teacher"
	FieldFac       = "fac"
	FieldGram      = "gram"
	FieldStateGram = "state_gram"
	FieldNum       = "num"
	FieldYear      = "year"
	FieldStateYear = "state_year"
	FieldProg      = "prog"
)

// Fields lists the record fields in spreadsheet column order.
var Fields = []string{
	FieldTeacher,
	FieldFac,
	FieldGram,
	FieldStateGram,
	FieldNum,
	FieldYear,
	FieldStateYear,
	FieldProg,
}

// ExportHeaders localized column headers used on export
var ExportHeaders = map[string]string{
	FieldTeacher:   "Прізвище, ім'я, по-батькові співробітника",
	FieldFac:       "Факультет/ННІ",
	FieldGram:      "Нагорода (Почесне звання, відзнака та грамота)",
	FieldStateGram: "Державна нагорода",
	FieldNum:       "№ Протоколу ВР КПІ ім. Ігоря Сікорського про відзнічення",
	FieldYear:      "Рік відзначення КПІ",
	FieldStateYear: "Рік призначення державою",
	FieldProg:      "Прогнозування",
}

// AwardRecord one teacher's KPI or state award.
// Every field is persisted, absent values as "".
type AwardRecord struct {
	Teacher   string `json:"teacher" bson:"teacher"`
	Fac       string `json:"fac" bson:"fac"`
	Gram      string `json:"gram" bson:"gram"`             // KPI award
	StateGram string `json:"state_gram" bson:"state_gram"` // state award
	Num       string `json:"num" bson:"num"`               // protocol number
	Year      string `json:"year" bson:"year"`
	StateYear string `json:"state_year" bson:"state_year"`
	Prog      string `json:"prog" bson:"prog"` // predicted next award
}

// Get returns the value of a record field by name.
func (r AwardRecord) Get(field string) string {
	switch field {
	case FieldTeacher:
		return r.Teacher
	case FieldFac:
		return r.Fac
	case FieldGram:
		return r.Gram
	case FieldStateGram:
		return r.StateGram
	case FieldNum:
		return r.Num
	case FieldYear:
		return r.Year
	case FieldStateYear:
		return r.StateYear
	case FieldProg:
		return r.Prog
	}
	return ""
}

// Values returns the field values in Fields order.
func (r AwardRecord) Values() []string {
	out := make([]string, len(Fields))
	for i, f := range Fields {
		out[i] = r.Get(f)
	}
	return out
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (r AwardRecord) Trimmed() AwardRecord {
	return AwardRecord{
		Teacher:   strings.TrimSpace(r.Teacher),
		Fac:       strings.TrimSpace(r.Fac),
		Gram:      strings.TrimSpace(r.Gram),
		StateGram: strings.TrimSpace(r.StateGram),
		Num:       strings.TrimSpace(r.Num),
		Year:      strings.TrimSpace(r.Year),
		StateYear: strings.TrimSpace(r.StateYear),
		Prog:      strings.TrimSpace(r.Prog),
	}
}

// IsKPI reports whether the record carries a KPI award rather than a state one.
func (r AwardRecord) IsKPI() bool {
	return !IsBlank(r.Gram)
}

// Award returns the award name and its year, KPI first.
func (r AwardRecord) Award() (name, year string) {
	if r.IsKPI() {
		return r.Gram, r.Year
	}
	return r.StateGram, r.StateYear
}

// IsBlank reports whether a spreadsheet value carries no data.
// "nan" is what pandas wrote for empty cells in older exports.
func IsBlank(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, "nan")
}

// Summary renders a record as one line of the results list.
// The prediction is only mentioned for awards from last year onwards.
func Summary(r AwardRecord, now time.Time) string {
	award, year := r.Award()
	line := fmt.Sprintf("%s отримав  у %s році нагороду %s", r.Teacher, year, award)

	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return line
	}
	if y >= now.Year()-1 && !IsBlank(r.Prog) {
		line += fmt.Sprintf(", за прогнозом є можливість отримати %s у %d", r.Prog, y)
	}
	return line
}
