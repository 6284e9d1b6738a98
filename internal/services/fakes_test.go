package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rohitpal119/district-state-watch/internal/models"
	"github.com/rohitpal119/district-state-watch/internal/utils"
)

// In-memory repository fakes. The atomic methods take the same lock as
// everything else, so concurrent callers serialize the way rows do
// under FOR UPDATE.

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*models.Profile
}

func newFakeProfileRepo(profiles ...*models.Profile) *fakeProfileRepo {
	r := &fakeProfileRepo{profiles: map[uuid.UUID]*models.Profile{}}
	for _, p := range profiles {
		r.profiles[p.ID] = p
	}
	return r
}

func (r *fakeProfileRepo) Create(_ context.Context, p *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.ID] = p
	return nil
}

func (r *fakeProfileRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.profiles[id], nil
}

func (r *fakeProfileRepo) GetByEmail(_ context.Context, email string) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProfileRepo) ListByRoleAndDistrict(_ context.Context, role models.UserRoleType, district string) ([]*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Profile{}
	for _, p := range r.profiles {
		if p.Role == role && p.District() == district {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeProjectRepo struct {
	mu       sync.Mutex
	projects map[uuid.UUID]*models.Project
}

func newFakeProjectRepo(projects ...*models.Project) *fakeProjectRepo {
	r := &fakeProjectRepo{projects: map[uuid.UUID]*models.Project{}}
	for _, p := range projects {
		if p.RowVersion == 0 {
			p.RowVersion = 1
		}
		r.projects[p.ID] = p
	}
	return r
}

func (r *fakeProjectRepo) Create(_ context.Context, p *models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.RowVersion = 1
	r.projects[p.ID] = p
	return nil
}

func (r *fakeProjectRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProjectRepo) ListAll(_ context.Context) ([]*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Project{}
	for _, p := range r.projects {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProjectRepo) ListByDistrict(_ context.Context, district string) ([]*models.Project, error) {
	all, _ := r.ListAll(context.Background())
	out := []*models.Project{}
	for _, p := range all {
		if p.District == district {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) ListByContractor(_ context.Context, contractorID uuid.UUID) ([]*models.Project, error) {
	all, _ := r.ListAll(context.Background())
	out := []*models.Project{}
	for _, p := range all {
		if p.ContractorID != nil && *p.ContractorID == contractorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) ListAvailable(_ context.Context) ([]*models.Project, error) {
	all, _ := r.ListAll(context.Background())
	out := []*models.Project{}
	for _, p := range all {
		if p.IsAvailable() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) AssignContractorAtomic(_ context.Context, projectID, contractorID uuid.UUID) (*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[projectID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	if p.ContractorID != nil {
		cp := *p
		return &cp, utils.ErrAlreadyAssigned
	}
	if p.Status != models.ProjectStatusOngoing {
		cp := *p
		return &cp, utils.ErrWrongStatus
	}
	id := contractorID
	p.ContractorID = &id
	p.RowVersion++
	cp := *p
	return &cp, nil
}

func (r *fakeProjectRepo) UpdateProgressAtomic(
	_ context.Context,
	projectID uuid.UUID,
	expectedVersion int64,
	completion int,
	status models.ProjectStatusType,
) (*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[projectID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	if p.RowVersion != expectedVersion {
		cp := *p
		return &cp, utils.ErrWrongStatus
	}
	p.CompletionPercentage = completion
	p.Status = status
	p.RowVersion++
	cp := *p
	return &cp, nil
}

type fakeFundUpdateRepo struct {
	mu       sync.Mutex
	updates  map[uuid.UUID]*models.FundUpdate
	projects *fakeProjectRepo
}

func newFakeFundUpdateRepo(projects *fakeProjectRepo, updates ...*models.FundUpdate) *fakeFundUpdateRepo {
	r := &fakeFundUpdateRepo{updates: map[uuid.UUID]*models.FundUpdate{}, projects: projects}
	for _, fu := range updates {
		if fu.RowVersion == 0 {
			fu.RowVersion = 1
		}
		r.updates[fu.ID] = fu
	}
	return r
}

func (r *fakeFundUpdateRepo) Create(_ context.Context, fu *models.FundUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	fu.RowVersion = 1
	r.updates[fu.ID] = fu
	return nil
}

func (r *fakeFundUpdateRepo) GetByID(_ context.Context, id uuid.UUID) (*models.FundUpdate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fu, ok := r.updates[id]
	if !ok {
		return nil, nil
	}
	cp := *fu
	return &cp, nil
}

func (r *fakeFundUpdateRepo) ListAll(_ context.Context) ([]*models.FundUpdate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.FundUpdate{}
	for _, fu := range r.updates {
		cp := *fu
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeFundUpdateRepo) ListByContractor(_ context.Context, contractorID uuid.UUID) ([]*models.FundUpdate, error) {
	all, _ := r.ListAll(context.Background())
	out := []*models.FundUpdate{}
	for _, fu := range all {
		if fu.ContractorID == contractorID {
			out = append(out, fu)
		}
	}
	return out, nil
}

func (r *fakeFundUpdateRepo) ListByDistrict(ctx context.Context, district string) ([]*models.FundUpdate, error) {
	all, _ := r.ListAll(ctx)
	out := []*models.FundUpdate{}
	for _, fu := range all {
		proj, _ := r.projects.GetByID(ctx, fu.ProjectID)
		if proj != nil && proj.District == district {
			out = append(out, fu)
		}
	}
	return out, nil
}

func (r *fakeFundUpdateRepo) ApproveAtomic(_ context.Context, fundUpdateID, reviewerID uuid.UUID) (*models.FundUpdate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fu, ok := r.updates[fundUpdateID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	if fu.Status != models.FundUpdateStatusPending {
		cp := *fu
		return &cp, utils.ErrAlreadyReviewed
	}
	now := time.Now().UTC()
	fu.Status = models.FundUpdateStatusApproved
	fu.ReviewedBy = &reviewerID
	fu.ReviewedAt = &now
	fu.RowVersion++

	r.projects.mu.Lock()
	if proj, pOK := r.projects.projects[fu.ProjectID]; pOK {
		proj.FundUtilized += fu.Amount
		proj.RowVersion++
	}
	r.projects.mu.Unlock()

	cp := *fu
	return &cp, nil
}

func (r *fakeFundUpdateRepo) RejectAtomic(_ context.Context, fundUpdateID, reviewerID uuid.UUID) (*models.FundUpdate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fu, ok := r.updates[fundUpdateID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	if fu.Status != models.FundUpdateStatusPending {
		cp := *fu
		return &cp, utils.ErrAlreadyReviewed
	}
	now := time.Now().UTC()
	fu.Status = models.FundUpdateStatusRejected
	fu.ReviewedBy = &reviewerID
	fu.ReviewedAt = &now
	fu.RowVersion++
	cp := *fu
	return &cp, nil
}

type fakeFeedbackRepo struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*models.Feedback
}

func newFakeFeedbackRepo(entries ...*models.Feedback) *fakeFeedbackRepo {
	r := &fakeFeedbackRepo{entries: map[uuid.UUID]*models.Feedback{}}
	for _, f := range entries {
		if f.RowVersion == 0 {
			f.RowVersion = 1
		}
		r.entries[f.ID] = f
	}
	return r
}

func (r *fakeFeedbackRepo) Create(_ context.Context, f *models.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f.RowVersion = 1
	if f.Status == "" {
		f.Status = models.FeedbackStatusPending
	}
	r.entries[f.ID] = f
	return nil
}

func (r *fakeFeedbackRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.entries[id]
	if !ok {
		return nil, nil
	}
	cp := *f
	return &cp, nil
}

func (r *fakeFeedbackRepo) ListAll(_ context.Context) ([]*models.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Feedback{}
	for _, f := range r.entries {
		cp := *f
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeFeedbackRepo) ListByDistrict(_ context.Context, district string) ([]*models.Feedback, error) {
	all, _ := r.ListAll(context.Background())
	out := []*models.Feedback{}
	for _, f := range all {
		if f.District == district {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFeedbackRepo) ListByProjectIDs(_ context.Context, projectIDs []uuid.UUID) ([]*models.Feedback, error) {
	set := map[uuid.UUID]bool{}
	for _, id := range projectIDs {
		set[id] = true
	}
	all, _ := r.ListAll(context.Background())
	out := []*models.Feedback{}
	for _, f := range all {
		if f.ProjectID != nil && set[*f.ProjectID] {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFeedbackRepo) AdvanceStatusAtomic(
	_ context.Context,
	feedbackID uuid.UUID,
	expected, next models.FeedbackStatusType,
) (*models.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.entries[feedbackID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	if f.Status != expected {
		cp := *f
		return &cp, utils.ErrWrongStatus
	}
	f.Status = next
	if next == models.FeedbackStatusResolved {
		now := time.Now().UTC()
		f.ResolvedAt = &now
	}
	f.RowVersion++
	cp := *f
	return &cp, nil
}

type fakeCommunicationRepo struct {
	mu       sync.Mutex
	messages map[uuid.UUID]*models.Communication
}

func newFakeCommunicationRepo(messages ...*models.Communication) *fakeCommunicationRepo {
	r := &fakeCommunicationRepo{messages: map[uuid.UUID]*models.Communication{}}
	for _, c := range messages {
		if c.RowVersion == 0 {
			c.RowVersion = 1
		}
		r.messages[c.ID] = c
	}
	return r
}

func (r *fakeCommunicationRepo) Create(_ context.Context, c *models.Communication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.RowVersion = 1
	r.messages[c.ID] = c
	return nil
}

func (r *fakeCommunicationRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Communication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.messages[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCommunicationRepo) ListForContractor(_ context.Context, contractorID uuid.UUID) ([]*models.Communication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Communication{}
	for _, c := range r.messages {
		if c.ContractorID == contractorID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeCommunicationRepo) ListForCollector(_ context.Context, collectorID uuid.UUID, _ string) ([]*models.Communication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Communication{}
	for _, c := range r.messages {
		if c.DistrictCollectorID != nil && *c.DistrictCollectorID == collectorID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeCommunicationRepo) CountUnread(_ context.Context, contractorID uuid.UUID, senderType models.SenderTypeType) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.messages {
		if c.ContractorID == contractorID && c.SenderType == senderType && !c.Read {
			n++
		}
	}
	return n, nil
}

func (r *fakeCommunicationRepo) MarkRead(_ context.Context, id uuid.UUID) (*models.Communication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.messages[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	if !c.Read {
		c.Read = true
		c.RowVersion++
	}
	cp := *c
	return &cp, nil
}

type fakeAlertRepo struct {
	mu     sync.Mutex
	alerts map[uuid.UUID]*models.Alert
}

func newFakeAlertRepo(alerts ...*models.Alert) *fakeAlertRepo {
	r := &fakeAlertRepo{alerts: map[uuid.UUID]*models.Alert{}}
	for _, a := range alerts {
		if a.RowVersion == 0 {
			a.RowVersion = 1
		}
		r.alerts[a.ID] = a
	}
	return r
}

func (r *fakeAlertRepo) Create(_ context.Context, a *models.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.RowVersion = 1
	r.alerts[a.ID] = a
	return nil
}

func (r *fakeAlertRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.alerts[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAlertRepo) ListAll(_ context.Context) ([]*models.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Alert{}
	for _, a := range r.alerts {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeAlertRepo) ListByDistrict(_ context.Context, district string) ([]*models.Alert, error) {
	all, _ := r.ListAll(context.Background())
	out := []*models.Alert{}
	for _, a := range all {
		if a.District == district {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAlertRepo) ListByProjectIDs(_ context.Context, projectIDs []uuid.UUID) ([]*models.Alert, error) {
	set := map[uuid.UUID]bool{}
	for _, id := range projectIDs {
		set[id] = true
	}
	all, _ := r.ListAll(context.Background())
	out := []*models.Alert{}
	for _, a := range all {
		if a.ProjectID != nil && set[*a.ProjectID] {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAlertRepo) HasActiveForProject(_ context.Context, projectID uuid.UUID, alertType models.AlertTypeType) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.alerts {
		if a.ProjectID != nil && *a.ProjectID == projectID &&
			a.AlertType == alertType && a.Status == models.AlertStatusActive {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAlertRepo) ResolveAtomic(_ context.Context, alertID uuid.UUID) (*models.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.alerts[alertID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	if a.Status != models.AlertStatusActive {
		cp := *a
		return &cp, utils.ErrWrongStatus
	}
	now := time.Now().UTC()
	a.Status = models.AlertStatusResolved
	a.ResolvedAt = &now
	a.RowVersion++
	cp := *a
	return &cp, nil
}

type fakeImageUpdateRepo struct {
	mu     sync.Mutex
	images map[uuid.UUID]*models.ImageUpdate
}

func newFakeImageUpdateRepo(images ...*models.ImageUpdate) *fakeImageUpdateRepo {
	r := &fakeImageUpdateRepo{images: map[uuid.UUID]*models.ImageUpdate{}}
	for _, iu := range images {
		r.images[iu.ID] = iu
	}
	return r
}

func (r *fakeImageUpdateRepo) Create(_ context.Context, iu *models.ImageUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.images[iu.ID] = iu
	return nil
}

func (r *fakeImageUpdateRepo) GetByID(_ context.Context, id uuid.UUID) (*models.ImageUpdate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	iu, ok := r.images[id]
	if !ok {
		return nil, nil
	}
	cp := *iu
	return &cp, nil
}

func (r *fakeImageUpdateRepo) ListByProject(_ context.Context, projectID uuid.UUID) ([]*models.ImageUpdate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.ImageUpdate{}
	for _, iu := range r.images {
		if iu.ProjectID == projectID {
			cp := *iu
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeImageUpdateRepo) ListByContractor(_ context.Context, contractorID uuid.UUID) ([]*models.ImageUpdate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.ImageUpdate{}
	for _, iu := range r.images {
		if iu.ContractorID == contractorID {
			cp := *iu
			out = append(out, &cp)
		}
	}
	return out, nil
}

// Shared test fixtures.

func testOfficial() *models.Profile {
	return &models.Profile{
		ID:       uuid.New(),
		Email:    "official@test.in",
		FullName: "Test Official",
		Role:     models.RoleStateOfficial,
	}
}

func testCollector(district string) *models.Profile {
	return &models.Profile{
		ID:               uuid.New(),
		Email:            "collector@test.in",
		FullName:         "Test Collector",
		Role:             models.RoleDistrictCollector,
		AssignedDistrict: &district,
	}
}

func testContractor() *models.Profile {
	return &models.Profile{
		ID:       uuid.New(),
		Email:    "contractor@test.in",
		FullName: "Test Contractor",
		Role:     models.RoleContractor,
	}
}

func testNotifier() *NotificationService {
	return NewNotificationService(nil, nil, "", "", "test")
}
