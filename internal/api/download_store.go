package api

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"kpiawards/internal/model"
)

const exportDownloadTTL = 10 * time.Minute

type exportDownload struct {
	filePath  string
	filename  string
	format    model.Format
	expiresAt time.Time
}

// exportDownloadStore one-shot download tokens for finished exports
type exportDownloadStore struct {
	mu    sync.Mutex
	items map[string]exportDownload
	now   func() time.Time
}

func newExportDownloadStore() *exportDownloadStore {
	return &exportDownloadStore{
		items: make(map[string]exportDownload),
		now:   time.Now,
	}
}

// put registers a file; expired entries are returned so their files can be removed
func (s *exportDownloadStore) put(item exportDownload, ttl time.Duration) (token string, expired []exportDownload) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	expired = s.purgeExpiredLocked(now)

	token = uuid.NewString()
	item.expiresAt = now.Add(ttl)
	s.items[token] = item
	return token, expired
}

func (s *exportDownloadStore) get(token string) (exportDownload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.items[token]
	if !ok {
		return exportDownload{}, false
	}
	if s.now().After(v.expiresAt) {
		delete(s.items, token)
		return exportDownload{}, false
	}
	return v, true
}

func (s *exportDownloadStore) delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, token)
}

func (s *exportDownloadStore) purgeExpiredLocked(now time.Time) []exportDownload {
	var expired []exportDownload
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			expired = append(expired, v)
			delete(s.items, k)
		}
	}
	return expired
}
