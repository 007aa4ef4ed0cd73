package exporter

// ProgressEvent export progress shown to the operator
type ProgressEvent struct {
	Percent int    `json:"percent"`
	Stage   string `json:"stage"`
}

func reportProgress(progress func(ProgressEvent), percent int, stage string) {
	if progress == nil {
		return
	}
	percent = max(0, min(percent, 100))
	progress(ProgressEvent{
		Percent: percent,
		Stage:   stage,
	})
}
