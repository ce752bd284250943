package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/cristianccgg/letranido-backend/internal/model"
)

// ── Mock ContestRepository ──

type mockContestRepo struct {
	contests map[string]*model.Contest
	listErr  error
}

func newMockContestRepo() *mockContestRepo {
	return &mockContestRepo{contests: make(map[string]*model.Contest)}
}

func (m *mockContestRepo) Create(_ context.Context, contest *model.Contest) error {
	if contest.ContestID == "" {
		contest.ContestID = "contest-" + contest.Slug
	}
	for _, c := range m.contests {
		if c.Slug == contest.Slug {
			return gorm.ErrDuplicatedKey
		}
	}
	m.contests[contest.ContestID] = contest
	return nil
}

func (m *mockContestRepo) GetByID(_ context.Context, id string) (*model.Contest, error) {
	if c, ok := m.contests[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockContestRepo) GetBySlug(_ context.Context, slug string) (*model.Contest, error) {
	for _, c := range m.contests {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockContestRepo) Update(_ context.Context, contest *model.Contest) error {
	m.contests[contest.ContestID] = contest
	return nil
}

func (m *mockContestRepo) Delete(_ context.Context, id string) error {
	delete(m.contests, id)
	return nil
}

func (m *mockContestRepo) List(_ context.Context, status string) ([]model.Contest, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []model.Contest
	for _, c := range m.contests {
		if status != "" && c.Status != status {
			continue
		}
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].SubmissionDeadline.Before(result[j].SubmissionDeadline)
	})
	return result, nil
}

func (m *mockContestRepo) ListInVotingWindow(_ context.Context, now time.Time) ([]model.Contest, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []model.Contest
	for _, c := range m.contests {
		if c.Status == model.ContestStatusActive && c.SubmissionDeadline.Before(now) && !c.VotingDeadline.Before(now) {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].SubmissionDeadline.Before(result[j].SubmissionDeadline)
	})
	return result, nil
}

// ── Mock EmailLogRepository ──

type mockEmailLogRepo struct {
	mu       sync.Mutex
	logs     map[string]bool // contestID + "|" + emailType
	claimErr error
}

func newMockEmailLogRepo() *mockEmailLogRepo {
	return &mockEmailLogRepo{logs: make(map[string]bool)}
}

func (m *mockEmailLogRepo) ClaimSend(_ context.Context, contestID, emailType string) (bool, error) {
	if m.claimErr != nil {
		return false, m.claimErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := contestID + "|" + emailType
	if m.logs[key] {
		return false, nil
	}
	m.logs[key] = true
	return true, nil
}

func (m *mockEmailLogRepo) ReleaseClaim(_ context.Context, contestID, emailType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.logs, contestID+"|"+emailType)
	return nil
}

func (m *mockEmailLogRepo) Exists(_ context.Context, contestID, emailType string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.logs[contestID+"|"+emailType], nil
}

// ── Mock UserProfileRepository ──

type mockUserProfileRepo struct {
	profiles map[string]*model.UserProfile // keyed by email
	updates  int
}

func newMockUserProfileRepo() *mockUserProfileRepo {
	return &mockUserProfileRepo{profiles: make(map[string]*model.UserProfile)}
}

func (m *mockUserProfileRepo) GetByID(_ context.Context, id string) (*model.UserProfile, error) {
	for _, p := range m.profiles {
		if p.UserID == id {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserProfileRepo) GetByEmail(_ context.Context, email string) (*model.UserProfile, error) {
	if p, ok := m.profiles[email]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserProfileRepo) Update(_ context.Context, profile *model.UserProfile) error {
	m.updates++
	m.profiles[profile.Email] = profile
	return nil
}

func (m *mockUserProfileRepo) ListNewsletterOptIns(_ context.Context) ([]model.UserProfile, error) {
	var result []model.UserProfile
	for _, p := range m.profiles {
		if p.NewsletterContests {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Email < result[j].Email })
	return result, nil
}

// ── Mock NewsletterRepository ──

type mockNewsletterRepo struct {
	subs      map[string]*model.NewsletterSubscriber // keyed by email
	createErr error
	updates   int
}

func newMockNewsletterRepo() *mockNewsletterRepo {
	return &mockNewsletterRepo{subs: make(map[string]*model.NewsletterSubscriber)}
}

func (m *mockNewsletterRepo) GetByEmail(_ context.Context, email string) (*model.NewsletterSubscriber, error) {
	if s, ok := m.subs[email]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNewsletterRepo) Create(_ context.Context, sub *model.NewsletterSubscriber) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.subs[sub.Email]; ok {
		return gorm.ErrDuplicatedKey
	}
	if sub.SubscriberID == "" {
		sub.SubscriberID = "sub-" + sub.Email
	}
	m.subs[sub.Email] = sub
	return nil
}

func (m *mockNewsletterRepo) Update(_ context.Context, sub *model.NewsletterSubscriber) error {
	m.updates++
	m.subs[sub.Email] = sub
	return nil
}

func (m *mockNewsletterRepo) ListActive(_ context.Context) ([]model.NewsletterSubscriber, error) {
	var result []model.NewsletterSubscriber
	for _, s := range m.subs {
		if s.IsActive {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Email < result[j].Email })
	return result, nil
}

// ── Mock MaintenanceRepository ──

type mockMaintenanceRepo struct {
	state *model.MaintenanceMode
}

func newMockMaintenanceRepo() *mockMaintenanceRepo {
	return &mockMaintenanceRepo{state: &model.MaintenanceMode{Singleton: true}}
}

func (m *mockMaintenanceRepo) Get(_ context.Context) (*model.MaintenanceMode, error) {
	if m.state == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.state, nil
}

func (m *mockMaintenanceRepo) Toggle(_ context.Context, active bool, message, duration, adminEmail string) (*model.MaintenanceMode, error) {
	if m.state == nil {
		return nil, gorm.ErrRecordNotFound
	}
	now := time.Now()
	m.state.IsActive = active
	m.state.Message = message
	m.state.EstimatedDuration = duration
	m.state.ActivatedBy = adminEmail
	m.state.UpdatedAt = now
	if active {
		m.state.ActivatedAt = &now
	}
	return m.state, nil
}

// ── Mock Dispatcher ──

type mockDispatcher struct {
	mu      sync.Mutex
	calls   []string // contest IDs in call order
	failFor map[string]error
}

func newMockDispatcher() *mockDispatcher {
	return &mockDispatcher{failFor: make(map[string]error)}
}

func (m *mockDispatcher) SendContestEmail(_ context.Context, _, contestID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, contestID)
	if err, ok := m.failFor[contestID]; ok {
		return err
	}
	return nil
}

func (m *mockDispatcher) callCount(contestID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, id := range m.calls {
		if id == contestID {
			n++
		}
	}
	return n
}
