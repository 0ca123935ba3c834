package usecases_test

import (
	"context"
	"io"

	"github.com/samirrijal/spraylog/internal/core/domain"
	"github.com/samirrijal/spraylog/internal/core/ports"
)

// --- Mock PaddockRepository ---

type mockPaddockRepo struct {
	insertFn func(ctx context.Context, p *domain.Paddock) error
	getFn    func(ctx context.Context, id string) (*domain.Paddock, error)
	listFn   func(ctx context.Context) ([]domain.Paddock, error)
	updateFn func(ctx context.Context, p *domain.Paddock) error
	deleteFn func(ctx context.Context, id string) (bool, error)
}

func (m *mockPaddockRepo) Insert(ctx context.Context, p *domain.Paddock) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, p)
	}
	return nil
}

func (m *mockPaddockRepo) GetByID(ctx context.Context, id string) (*domain.Paddock, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockPaddockRepo) List(ctx context.Context) ([]domain.Paddock, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockPaddockRepo) Update(ctx context.Context, p *domain.Paddock) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, p)
	}
	return nil
}

func (m *mockPaddockRepo) Delete(ctx context.Context, id string) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return false, nil
}

// --- Recording EventPublisher ---

type recordingPublisher struct {
	subjects []string
	err      error
}

func (r *recordingPublisher) PublishPaddock(ctx context.Context, subject string, p *domain.Paddock) error {
	r.subjects = append(r.subjects, subject)
	return r.err
}

func (r *recordingPublisher) PublishPaddockDeleted(ctx context.Context, id string) error {
	r.subjects = append(r.subjects, ports.SubjectPaddockDeleted)
	return r.err
}

func (r *recordingPublisher) PublishApplication(ctx context.Context, app *domain.Application) error {
	r.subjects = append(r.subjects, ports.SubjectApplicationRecorded)
	return r.err
}

func (r *recordingPublisher) PublishRecommendation(ctx context.Context, rec *domain.Recommendation) error {
	r.subjects = append(r.subjects, ports.SubjectRecommendationCreated)
	return r.err
}

// --- Fake report collaborators ---

type fakeRenderer struct {
	single []string
	batch  [][]string
	err    error
}

func (f *fakeRenderer) RenderApplication(w io.Writer, app *domain.Application, paddocks []domain.Paddock) error {
	if f.err != nil {
		return f.err
	}
	f.single = append(f.single, app.ID)
	_, err := io.WriteString(w, "%PDF-single:"+app.ID)
	return err
}

func (f *fakeRenderer) RenderBatch(w io.Writer, apps []domain.Application, paddocks map[string]domain.Paddock) error {
	if f.err != nil {
		return f.err
	}
	var ids []string
	for _, a := range apps {
		ids = append(ids, a.ID)
	}
	f.batch = append(f.batch, ids)
	_, err := io.WriteString(w, "%PDF-batch")
	return err
}

func (f *fakeRenderer) WriteRegister(w io.Writer, apps []domain.Application, paddocks map[string]domain.Paddock) error {
	_, err := io.WriteString(w, "xlsx")
	return err
}

type fakeMailer struct {
	sent []*domain.EmailMessage
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, msg *domain.EmailMessage) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}
