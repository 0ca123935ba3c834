package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/samirrijal/spraylog/internal/core/domain"
)

type recordingEmailer struct {
	ids []string
	to  []string
	err error
}

func (r *recordingEmailer) EmailApplication(ctx context.Context, id, to string) error {
	r.ids = append(r.ids, id)
	r.to = append(r.to, to)
	return r.err
}

func TestArchiveHandler_SendsToArchive(t *testing.T) {
	rec := &recordingEmailer{}
	h := archiveHandler(rec, "records@farm.example")

	err := h(context.Background(), &domain.Application{ID: "app-1"})

	assert.NoError(t, err)
	assert.Equal(t, []string{"app-1"}, rec.ids)
	assert.Equal(t, []string{"records@farm.example"}, rec.to)
}

func TestArchiveHandler_MissingRecordIsAcked(t *testing.T) {
	rec := &recordingEmailer{err: fmt.Errorf("application app-2: %w", domain.ErrNotFound)}
	h := archiveHandler(rec, "records@farm.example")

	assert.NoError(t, h(context.Background(), &domain.Application{ID: "app-2"}))
}

func TestArchiveHandler_DeliveryFailureIsRedelivered(t *testing.T) {
	rec := &recordingEmailer{err: errors.New("smtp: 421")}
	h := archiveHandler(rec, "records@farm.example")

	assert.Error(t, h(context.Background(), &domain.Application{ID: "app-3"}))
}
