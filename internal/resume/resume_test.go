package resume

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/atsfit/internal/db"
	"github.com/jonathan/atsfit/internal/retry"
)

type fakeStore struct {
	resumes   map[string]string
	failures  int // how many calls fail before succeeding
	callCount int
}

func newFakeStore() *fakeStore {
	return &fakeStore{resumes: make(map[string]string)}
}

func (f *fakeStore) maybeFail() error {
	f.callCount++
	if f.callCount <= f.failures {
		return fmt.Errorf("connection reset")
	}
	return nil
}

func (f *fakeStore) GetResume(_ context.Context, userID string) (*db.Resume, error) {
	if err := f.maybeFail(); err != nil {
		return nil, err
	}
	md, ok := f.resumes[userID]
	if !ok {
		return nil, nil
	}
	return &db.Resume{UserID: userID, ResumeMd: md}, nil
}

func (f *fakeStore) SaveResume(_ context.Context, userID, resumeMd string) (*db.Resume, error) {
	if err := f.maybeFail(); err != nil {
		return nil, err
	}
	f.resumes[userID] = resumeMd
	return &db.Resume{UserID: userID, ResumeMd: resumeMd}, nil
}

func (f *fakeStore) DeleteResume(_ context.Context, userID string) error {
	if err := f.maybeFail(); err != nil {
		return err
	}
	if _, ok := f.resumes[userID]; !ok {
		return db.ErrResumeNotFound
	}
	delete(f.resumes, userID)
	return nil
}

// newFastService removes the retry sleeps so failure tests stay quick.
func newFastService(store Store) *Service {
	s := NewService(store)
	s.retryOpts = retry.Options{Delays: nil}
	return s
}

const validResume = "# Jane Doe\n\n## Experience\nBackend engineer at Acme."

func TestValidateContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"valid", validResume, ""},
		{"empty", "", "empty"},
		{"whitespace", "  \n\t ", "empty"},
		{"too short", "# short", "too short"},
		{"no headings", "Jane Doe, backend engineer at Acme.", "no section headings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateContent(tt.content)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestService_SaveAndGet(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	saved, err := svc.Save(context.Background(), "user-1", validResume)
	require.NoError(t, err)
	assert.Equal(t, validResume, saved.ResumeMd)

	got, err := svc.Get(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, validResume, got.ResumeMd)
}

func TestService_SaveRejectsInvalidContent(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	_, err := svc.Save(context.Background(), "user-1", "   ")
	require.Error(t, err)
	assert.Zero(t, store.callCount, "invalid content should never reach storage")
}

func TestService_GetContentFallsBackToTemplate(t *testing.T) {
	svc := NewService(newFakeStore())

	content, err := svc.GetContent(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, DefaultResumeMd, content)
}

func TestService_RetriesTransientFailures(t *testing.T) {
	store := newFakeStore()
	store.failures = 2
	svc := NewService(store)
	svc.retryOpts.Delays = []time.Duration{time.Millisecond, time.Millisecond, time.Millisecond}

	saved, err := svc.Save(context.Background(), "user-1", validResume)
	require.NoError(t, err)
	assert.Equal(t, validResume, saved.ResumeMd)
	assert.Equal(t, 3, store.callCount)
}

func TestService_GivesUpAfterRetriesExhausted(t *testing.T) {
	store := newFakeStore()
	store.failures = 10
	svc := newFastService(store)

	_, err := svc.Get(context.Background(), "user-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load resume")
}

func TestService_Delete(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	_, err := svc.Save(context.Background(), "user-1", validResume)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), "user-1"))

	got, err := svc.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestService_DeleteMissingIsNotRetried(t *testing.T) {
	store := newFakeStore()
	svc := newFastService(store)

	err := svc.Delete(context.Background(), "user-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, db.ErrResumeNotFound)
	assert.Equal(t, 1, store.callCount, "a missing resume is a permanent condition")
}
