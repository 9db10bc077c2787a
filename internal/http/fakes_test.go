package httpserver

import (
	"context"
	"sort"
	"sync"
	"time"

	"vulntrack/internal/jira"
	"vulntrack/internal/models"
	"vulntrack/internal/report"
	"vulntrack/internal/store"
)

// In-memory repositories backing the router tests. They mirror the
// contracts of the gorm implementations, including id assignment and
// sentinel errors.

type fakeUsers struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{nextID: 1, rows: map[int64]*models.User{}}
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.Email == u.Email {
			return store.ErrConflict
		}
	}
	u.ID = f.nextID
	f.nextID++
	cp := *u
	f.rows[u.ID] = &cp
	return nil
}

func (f *fakeUsers) ByID(_ context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (f *fakeUsers) ByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.Email == email {
			cp := *row
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUsers) List(_ context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.User, 0, len(f.rows))
	for _, row := range f.rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUsers) Update(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[u.ID]; !ok {
		return store.ErrNotFound
	}
	cp := *u
	f.rows[u.ID] = &cp
	return nil
}

func (f *fakeUsers) SetPassword(_ context.Context, id int64, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return store.ErrNotFound
	}
	row.PasswordHash = hash
	return nil
}

func (f *fakeUsers) MarkVerified(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return store.ErrNotFound
	}
	row.Verified = true
	return nil
}

type fakeOrgs struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*models.Organization
}

func newFakeOrgs() *fakeOrgs {
	return &fakeOrgs{nextID: 1, rows: map[int64]*models.Organization{}}
}

func (f *fakeOrgs) Create(_ context.Context, org *models.Organization) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	org.ID = f.nextID
	f.nextID++
	cp := *org
	f.rows[org.ID] = &cp
	return nil
}

func (f *fakeOrgs) ByID(_ context.Context, id int64) (*models.Organization, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (f *fakeOrgs) ListActive(_ context.Context) ([]models.Organization, error) {
	return f.list(false), nil
}

func (f *fakeOrgs) ListArchived(_ context.Context) ([]models.Organization, error) {
	return f.list(true), nil
}

func (f *fakeOrgs) list(archived bool) []models.Organization {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Organization{}
	for _, row := range f.rows {
		if row.Archived == archived {
			out = append(out, *row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeOrgs) Update(_ context.Context, org *models.Organization) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[org.ID]
	if !ok {
		return store.ErrNotFound
	}
	row.Name = org.Name
	return nil
}

func (f *fakeOrgs) SetArchived(_ context.Context, id int64, archived bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return store.ErrNotFound
	}
	row.Archived = archived
	return nil
}

type fakeAssets struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*models.Asset
}

func newFakeAssets() *fakeAssets {
	return &fakeAssets{nextID: 1, rows: map[int64]*models.Asset{}}
}

func (f *fakeAssets) Create(_ context.Context, a *models.Asset) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a.ID = f.nextID
	f.nextID++
	cp := *a
	f.rows[a.ID] = &cp
	return nil
}

func (f *fakeAssets) ByID(_ context.Context, orgID, id int64) (*models.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok || row.OrgID != orgID {
		return nil, store.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (f *fakeAssets) Get(_ context.Context, id int64) (*models.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (f *fakeAssets) ListActive(_ context.Context, orgID int64) ([]models.Asset, error) {
	return f.list(orgID, false), nil
}

func (f *fakeAssets) ListArchived(_ context.Context, orgID int64) ([]models.Asset, error) {
	return f.list(orgID, true), nil
}

func (f *fakeAssets) list(orgID int64, archived bool) []models.Asset {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Asset{}
	for _, row := range f.rows {
		if row.OrgID == orgID && row.Archived == archived {
			out = append(out, *row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeAssets) Update(_ context.Context, a *models.Asset) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[a.ID]
	if !ok || row.OrgID != a.OrgID {
		return store.ErrNotFound
	}
	row.Name = a.Name
	return nil
}

func (f *fakeAssets) SetArchived(_ context.Context, id int64, archived bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return store.ErrNotFound
	}
	row.Archived = archived
	return nil
}

type fakeVulns struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*models.Vulnerability
}

func newFakeVulns() *fakeVulns {
	return &fakeVulns{nextID: 1, rows: map[int64]*models.Vulnerability{}}
}

func (f *fakeVulns) Create(_ context.Context, v *models.Vulnerability) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v.ID = f.nextID
	f.nextID++
	cp := *v
	f.rows[v.ID] = &cp
	return nil
}

func (f *fakeVulns) ByID(_ context.Context, id int64) (*models.Vulnerability, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (f *fakeVulns) ListByAssessment(_ context.Context, assessmentID int64) ([]models.Vulnerability, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Vulnerability{}
	for _, row := range f.rows {
		if row.AssessmentID == assessmentID {
			out = append(out, *row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeVulns) Update(_ context.Context, v *models.Vulnerability) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[v.ID]
	if !ok || row.AssessmentID != v.AssessmentID {
		return store.ErrNotFound
	}
	key := row.JiraIssueKey
	cp := *v
	cp.JiraIssueKey = key
	f.rows[v.ID] = &cp
	return nil
}

func (f *fakeVulns) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeVulns) SetJiraKey(_ context.Context, id int64, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return store.ErrNotFound
	}
	row.JiraIssueKey = key
	return nil
}

func (f *fakeVulns) deleteByAssessment(assessmentID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, row := range f.rows {
		if row.AssessmentID == assessmentID {
			delete(f.rows, id)
		}
	}
}

type fakeAssessments struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*models.Assessment
	vulns  *fakeVulns
}

func newFakeAssessments(vulns *fakeVulns) *fakeAssessments {
	return &fakeAssessments{nextID: 1, rows: map[int64]*models.Assessment{}, vulns: vulns}
}

func (f *fakeAssessments) Create(_ context.Context, a *models.Assessment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a.ID = f.nextID
	f.nextID++
	cp := *a
	f.rows[a.ID] = &cp
	return nil
}

func (f *fakeAssessments) ByID(_ context.Context, assetID, id int64) (*models.Assessment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok || row.AssetID != assetID {
		return nil, store.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (f *fakeAssessments) Get(_ context.Context, id int64) (*models.Assessment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (f *fakeAssessments) ListByAsset(_ context.Context, assetID int64) ([]models.Assessment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Assessment{}
	for _, row := range f.rows {
		if row.AssetID == assetID {
			out = append(out, *row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAssessments) Update(_ context.Context, a *models.Assessment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[a.ID]
	if !ok || row.AssetID != a.AssetID {
		return store.ErrNotFound
	}
	cp := *a
	f.rows[a.ID] = &cp
	return nil
}

func (f *fakeAssessments) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	if _, ok := f.rows[id]; !ok {
		f.mu.Unlock()
		return store.ErrNotFound
	}
	delete(f.rows, id)
	f.mu.Unlock()
	f.vulns.deleteByAssessment(id)
	return nil
}

type refreshRow struct {
	userID    int64
	expiresAt time.Time
	revoked   bool
}

type fakeRefreshTokens struct {
	mu   sync.Mutex
	rows map[string]*refreshRow
}

func newFakeRefreshTokens() *fakeRefreshTokens {
	return &fakeRefreshTokens{rows: map[string]*refreshRow{}}
}

func (f *fakeRefreshTokens) Save(_ context.Context, jti string, userID int64, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[jti] = &refreshRow{userID: userID, expiresAt: expiresAt}
	return nil
}

func (f *fakeRefreshTokens) Consume(_ context.Context, jti string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[jti]
	if !ok || row.revoked || time.Now().After(row.expiresAt) {
		return 0, store.ErrNotFound
	}
	row.revoked = true
	return row.userID, nil
}

func (f *fakeRefreshTokens) RevokeAll(_ context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.userID == userID {
			row.revoked = true
		}
	}
	return nil
}

type oneTimeRow struct {
	kind      models.TokenKind
	userID    int64
	expiresAt time.Time
	consumed  bool
}

type fakeOneTimeTokens struct {
	mu   sync.Mutex
	rows map[string]*oneTimeRow

	// lastIssued stands in for the mailer: tests read the token that a
	// real deployment would deliver out of band.
	lastIssued map[models.TokenKind]string
}

func newFakeOneTimeTokens() *fakeOneTimeTokens {
	return &fakeOneTimeTokens{
		rows:       map[string]*oneTimeRow{},
		lastIssued: map[models.TokenKind]string{},
	}
}

func (f *fakeOneTimeTokens) Issue(_ context.Context, kind models.TokenKind, userID int64, value string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.kind == kind && row.userID == userID {
			row.consumed = true
		}
	}
	f.rows[value] = &oneTimeRow{kind: kind, userID: userID, expiresAt: expiresAt}
	f.lastIssued[kind] = value
	return nil
}

func (f *fakeOneTimeTokens) Consume(_ context.Context, kind models.TokenKind, value string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[value]
	if !ok || row.kind != kind || row.consumed || time.Now().After(row.expiresAt) {
		return 0, store.ErrNotFound
	}
	row.consumed = true
	return row.userID, nil
}

type fakeFiles struct {
	mu   sync.Mutex
	rows map[string]*models.StoredFile
}

func newFakeFiles() *fakeFiles {
	return &fakeFiles{rows: map[string]*models.StoredFile{}}
}

func (f *fakeFiles) Put(_ context.Context, file *models.StoredFile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *file
	f.rows[file.ID] = &cp
	return nil
}

func (f *fakeFiles) Get(_ context.Context, id string) (*models.StoredFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

type fakeTicketer struct {
	mu    sync.Mutex
	err   error
	key   string
	calls int
	last  jira.Issue
}

func (f *fakeTicketer) CreateIssue(_ context.Context, issue jira.Issue) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.last = issue
	if f.err != nil {
		return "", f.err
	}
	return f.key, nil
}

type fakeRenderer struct {
	err error
	pdf []byte
}

func (f *fakeRenderer) Render(_ context.Context, _ report.Data) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.pdf, nil
}
