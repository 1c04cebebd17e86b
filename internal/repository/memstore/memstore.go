// Package memstore is an in-memory implementation of the repository
// contracts.  It mirrors the MySQL schema's unique keys, ordering and
// not-found sentinels so that services, handlers and routes can be
// exercised without a database.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/job-portal/internal/model"
	"github.com/iliyamo/job-portal/internal/repository"
	"github.com/iliyamo/job-portal/internal/utils"
)

// DB holds every table behind one mutex.
type DB struct {
	mu    sync.Mutex
	clock time.Time
	err   error

	nextID uint64

	users         map[uint64]*model.User
	revoked       map[string]time.Time
	jobs          map[uint64]*model.Job
	applications  map[uint64]*model.Application
	savedJobs     map[uint64]*model.SavedJob
	seekers       map[uint64]*model.SeekerProfile
	employers     map[uint64]*model.EmployerProfile
	notifications map[uint64]*model.Notification
}

// New returns an empty store whose clock starts at a fixed instant and
// advances one millisecond per write, so creation order is always
// reflected in created_at.
func New() *DB {
	return &DB{
		clock:         time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		users:         map[uint64]*model.User{},
		revoked:       map[string]time.Time{},
		jobs:          map[uint64]*model.Job{},
		applications:  map[uint64]*model.Application{},
		savedJobs:     map[uint64]*model.SavedJob{},
		seekers:       map[uint64]*model.SeekerProfile{},
		employers:     map[uint64]*model.EmployerProfile{},
		notifications: map[uint64]*model.Notification{},
	}
}

// FailWith makes every subsequent call return err until it is reset
// with FailWith(nil).
func (d *DB) FailWith(err error) {
	d.mu.Lock()
	d.err = err
	d.mu.Unlock()
}

// RevokedCount reports how many tokens the ledger holds.
func (d *DB) RevokedCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.revoked)
}

func (d *DB) tick() time.Time {
	d.clock = d.clock.Add(time.Millisecond)
	return d.clock
}

func (d *DB) id() uint64 {
	d.nextID++
	return d.nextID
}

// begin locks the store and reports the injected error or a done
// context.  Callers must unlock when begin returns nil.
func (d *DB) begin(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	if d.err != nil {
		d.mu.Unlock()
		return d.err
	}
	return nil
}

// Users returns the user table.
func (d *DB) Users() *Users { return &Users{d} }

// Tokens returns the revocation ledger.
func (d *DB) Tokens() *Tokens { return &Tokens{d} }

// Jobs returns the job table.
func (d *DB) Jobs() *Jobs { return &Jobs{d} }

// Applications returns the application table.
func (d *DB) Applications() *Applications { return &Applications{d} }

// SavedJobs returns the saved job table.
func (d *DB) SavedJobs() *SavedJobs { return &SavedJobs{d} }

// Profiles returns both profile tables.
func (d *DB) Profiles() *Profiles { return &Profiles{d} }

// Notifications returns the notification table.
func (d *DB) Notifications() *Notifications { return &Notifications{d} }

func newestFirst[T any](items []T, key func(T) (time.Time, uint64)) {
	sort.Slice(items, func(i, j int) bool {
		ti, ii := key(items[i])
		tj, ij := key(items[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return ii > ij
	})
}

// Users implements the user store.
type Users struct{ d *DB }

func (s *Users) Create(ctx context.Context, u *model.User) error {
	d := s.d
	if err := d.begin(ctx); err != nil {
		return err
	}
	defer d.mu.Unlock()
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	for _, other := range d.users {
		if other.Email == u.Email {
			return repository.ErrEmailExists
		}
	}
	now := d.tick()
	u.ID = d.id()
	u.CreatedAt, u.UpdatedAt = now, now
	cp := *u
	d.users[u.ID] = &cp
	return nil
}

func (s *Users) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	d := s.d
	if err := d.begin(ctx); err != nil {
		return nil, err
	}
	defer d.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range d.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *Users) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	d := s.d
	if err := d.begin(ctx); err != nil {
		return nil, err
	}
	defer d.mu.Unlock()
	u, ok := d.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *Users) UpdatePassword(ctx context.Context, id uint64, hash string) error {
	d := s.d
	if err := d.begin(ctx); err != nil {
		return err
	}
	defer d.mu.Unlock()
	u, ok := d.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.PasswordHash = hash
	u.UpdatedAt = d.tick()
	return nil
}

func (s *Users) SetBanned(ctx context.Context, id uint64) (*model.User, error) {
	d := s.d
	if err := d.begin(ctx); err != nil {
		return nil, err
	}
	defer d.mu.Unlock()
	u, ok := d.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	if !u.Banned {
		u.Banned = true
		u.UpdatedAt = d.tick()
	}
	cp := *u
	return &cp, nil
}

func (s *Users) ListAll(ctx context.Context) ([]*model.User, error) {
	d := s.d
	if err := d.begin(ctx); err != nil {
		return nil, err
	}
	defer d.mu.Unlock()
	out := []*model.User{}
	for _, u := range d.users {
		cp := *u
		out = append(out, &cp)
	}
	newestFirst(out, func(u *model.User) (time.Time, uint64) { return u.CreatedAt, u.ID })
	return out, nil
}

// Tokens implements the revocation ledger.
type Tokens struct{ d *DB }

func (s *Tokens) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	d := s.d
	if err := d.begin(ctx); err != nil {
		return err
	}
	defer d.mu.Unlock()
	d.revoked[token] = expiresAt.UTC()
	return nil
}

func (s *Tokens) IsRevoked(ctx context.Context, token string) (bool, error) {
	d := s.d
	if err := d.begin(ctx); err != nil {
		return false, err
	}
	defer d.mu.Unlock()
	_, ok := d.revoked[token]
	return ok, nil
}

func (s *Tokens) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	d := s.d
	if err := d.begin(ctx); err != nil {
		return 0, err
	}
	defer d.mu.Unlock()
	var n int64
	for tok, exp := range d.revoked {
		if exp.Before(now) {
			delete(d.revoked, tok)
			n++
		}
	}
	return n, nil
}

// Jobs implements the job store.
type Jobs struct{ d *DB }

func (s *Jobs) Create(ctx context.Context, j *model.Job) error {
	d := s.d
	if err := d.begin(ctx); err != nil {
		return err
	}
	defer d.mu.Unlock()
	now := d.tick()
	j.ID = d.id()
	j.CreatedAt, j.UpdatedAt = now, now
	cp := *j
	d.jobs[j.ID] = &cp
	return nil
}

func (s *Jobs) GetByID(ctx context.Context, id uint64) (*model.Job, error) {
	d := s.d
	if err := d.begin(ctx); err != nil {
		return nil, err
	}
	defer d.mu.Unlock()
	j, ok := d.jobs[id]
	if !ok {
		return nil, repository.ErrJobNotFound
	}
	cp := *j
	return &cp, nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func (s *Jobs) List(ctx context.Context, f model.JobFilter) ([]*model.Job, error) {
	d := s.d
	if err := d.begin(ctx); err != nil {
		return nil, err
	}
	defer d.mu.Unlock()
	search := strings.TrimSpace(f.Search)
	location := strings.TrimSpace(f.Location)
	matched := []*model.Job{}
	for _, j := range d.jobs {
		if j.RemovedByAdmin {
			continue
		}
		if search != "" && !containsFold(j.Title, search) && !containsFold(j.Description, search) &&
			!containsFold(j.Requirements, search) {
			continue
		}
		if location != "" && !containsFold(j.Location, location) {
			continue
		}
		if f.JobType != "" && j.JobType != f.JobType {
			continue
		}
		cp := *j
		matched = append(matched, &cp)
	}
	newestFirst(matched, func(j *model.Job) (time.Time, uint64) { return j.CreatedAt, j.ID })

	start := f.Offset()
	if start >= len(matched) {
		return []*model.Job{}, nil
	}
	end := start + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], nil
}

func (s *Jobs) ListByEmployer(ctx context.Context, employerID uint64) ([]*model.Job, error) {
	return s.collect(ctx, func(j *model.Job) bool { return j.EmployerID == employerID })
}

func (s *Jobs) ListAll(ctx context.Context) ([]*model.Job, error) {
	return s.collect(ctx, func(*model.Job) bool { return true })
}

func (s *Jobs) collect(ctx context.Context, keep func(*model.Job) bool) ([]*model.Job, error) {
	d := s.d
	if err := d.begin(ctx); err != nil {
		return nil, err
	}
	defer d.mu.Unlock()
	out := []*model.Job{}
	for _, j := range d.jobs {
		if keep(j) {
			cp := *j
			out = append(out, &cp)
		}
	}
	newestFirst(out, func(j *model.Job) (time.Time, uint64) { return j.CreatedAt, j.ID })
	return out, nil
}

func (s *Jobs) Update(ctx context.Context, j *model.Job) error {
	d := s.d
	if err := d.begin(ctx); err != nil {
		return err
	}
	defer d.mu.Unlock()
	stored, ok := d.jobs[j.ID]
	if !ok || stored.EmployerID != j.EmployerID {
		return repository.ErrJobNotFound
	}
	stored.Title = j.Title
	stored.Description = j.Description
	stored.Requirements = j.Requirements
	stored.Location = j.Location
	stored.SalaryRange = j.SalaryRange
	stored.JobType = j.JobType
	stored.UpdatedAt = d.tick()
	*j = *stored
	return nil
}

func (s *Jobs) Delete(ctx context.Context, id, employerID uint64) error {
	d := s.d
	if err := d.begin(ctx); err != nil {
		return err
	}
	defer d.mu.Unlock()
	j, ok := d.jobs[id]
	if !ok || j.EmployerID != employerID {
		return repository.ErrJobNotFound
	}
	delete(d.jobs, id)
	// ON DELETE CASCADE
	for aid, a := range d.applications {
		if a.JobID == id {
			delete(d.applications, aid)
		}
	}
	for sid, sj := range d.savedJobs {
		if sj.JobID == id {
			delete(d.savedJobs, sid)
		}
	}
	return nil
}

func (s *Jobs) MarkRemoved(ctx context.Context, id uint64) (*model.Job, error) {
	d := s.d
	if err := d.begin(ctx); err != nil {
		return nil, err
	}
	defer d.mu.Unlock()
	j, ok := d.jobs[id]
	if !ok {
		return nil, repository.ErrJobNotFound
	}
	if !j.RemovedByAdmin {
		j.RemovedByAdmin = true
		j.UpdatedAt = d.tick()
	}
	cp := *j
	return &cp, nil
}

// Applications implements the application store.
type Applications struct{ d *DB }

func (s *Applications) Create(ctx context.Context, a *model.Application) error {
	d := s.d
	if err := d.begin(ctx); err != nil {
		return err
	}
	defer d.mu.Unlock()
	for _, other := range d.applications {
		if other.JobID == a.JobID && other.SeekerID == a.SeekerID {
			return repository.ErrDuplicateApplication
		}
	}
	now := d.tick()
	a.ID = d.id()
	a.Status = model.StatusApplied
	a.CreatedAt, a.UpdatedAt = now, now
	cp := *a
	d.applications[a.ID] = &cp
	return nil
}

func (s *Applications) GetByID(ctx context.Context, id uint64) (*model.Application, error) {
	d := s.d
	if err := d.begin(ctx); err != nil {
		return nil, err
	}
	defer d.mu.Unlock()
	a, ok := d.applications[id]
	if !ok {
		return nil, repository.ErrApplicationNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *Applications) FindByJobAndSeeker(ctx context.Context, jobID, seekerID uint64) (*model.Application, error) {
	d := s.d
	if err := d.begin(ctx); err != nil {
		return nil, err
	}
	defer d.mu.Unlock()
	for _, a := range d.applications {
		if a.JobID == jobID && a.SeekerID == seekerID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repository.ErrApplicationNotFound
}

func (s *Applications) GetDetail(ctx context.Context, id uint64) (*model.ApplicationDetail, error) {
	d := s.d
	if err := d.begin(ctx); err != nil {
		return nil, err
	}
	defer d.mu.Unlock()
	a, ok := d.applications[id]
	if !ok {
		return nil, repository.ErrApplicationNotFound
	}
	j, ok := d.jobs[a.JobID]
	if !ok {
		return nil, repository.ErrApplicationNotFound
	}
	return &model.ApplicationDetail{Application: *a, EmployerID: j.EmployerID, JobTitle: j.Title}, nil
}

func (s *Applications) ListBySeeker(ctx context.Context, seekerID uint64) ([]*model.Application, error) {
	return s.collect(ctx, func(a *model.Application) bool { return a.SeekerID == seekerID })
}

func (s *Applications) ListByJob(ctx context.Context, jobID uint64) ([]*model.Application, error) {
	return s.collect(ctx, func(a *model.Application) bool { return a.JobID == jobID })
}

func (s *Applications) ListAll(ctx context.Context) ([]*model.Application, error) {
	return s.collect(ctx, func(*model.Application) bool { return true })
}

func (s *Applications) collect(ctx context.Context, keep func(*model.Application) bool) ([]*model.Application, error) {
	d := s.d
	if err := d.begin(ctx); err != nil {
		return nil, err
	}
	defer d.mu.Unlock()
	out := []*model.Application{}
	for _, a := range d.applications {
		if keep(a) {
			cp := *a
			out = append(out, &cp)
		}
	}
	newestFirst(out, func(a *model.Application) (time.Time, uint64) { return a.CreatedAt, a.ID })
	return out, nil
}

func (s *Applications) UpdateStatus(ctx context.Context, id uint64, status model.ApplicationStatus) (*model.Application, error) {
	d := s.d
	if err := d.begin(ctx); err != nil {
		return nil, err
	}
	defer d.mu.Unlock()
	a, ok := d.applications[id]
	if !ok {
		return nil, repository.ErrApplicationNotFound
	}
	a.Status = status
	a.UpdatedAt = d.tick()
	cp := *a
	return &cp, nil
}

func (s *Applications) Delete(ctx context.Context, id, seekerID uint64) error {
	d := s.d
	if err := d.begin(ctx); err != nil {
		return err
	}
	defer d.mu.Unlock()
	a, ok := d.applications[id]
	if !ok || a.SeekerID != seekerID {
		return repository.ErrApplicationNotFound
	}
	delete(d.applications, id)
	return nil
}

// SavedJobs implements the saved job store.
type SavedJobs struct{ d *DB }

func (s *SavedJobs) Create(ctx context.Context, sj *model.SavedJob) error {
	d := s.d
	if err := d.begin(ctx); err != nil {
		return err
	}
	defer d.mu.Unlock()
	for _, other := range d.savedJobs {
		if other.SeekerID == sj.SeekerID && other.JobID == sj.JobID {
			return repository.ErrDuplicateSavedJob
		}
	}
	sj.ID = d.id()
	sj.CreatedAt = d.tick()
	cp := *sj
	d.savedJobs[sj.ID] = &cp
	return nil
}

func (s *SavedJobs) Find(ctx context.Context, seekerID, jobID uint64) (*model.SavedJob, error) {
	d := s.d
	if err := d.begin(ctx); err != nil {
		return nil, err
	}
	defer d.mu.Unlock()
	for _, sj := range d.savedJobs {
		if sj.SeekerID == seekerID && sj.JobID == jobID {
			cp := *sj
			return &cp, nil
		}
	}
	return nil, repository.ErrSavedJobNotFound
}

func (s *SavedJobs) ListBySeeker(ctx context.Context, seekerID uint64) ([]*model.SavedJobDetail, error) {
	d := s.d
	if err := d.begin(ctx); err != nil {
		return nil, err
	}
	defer d.mu.Unlock()
	out := []*model.SavedJobDetail{}
	for _, sj := range d.savedJobs {
		if sj.SeekerID != seekerID {
			continue
		}
		j, ok := d.jobs[sj.JobID]
		if !ok {
			continue
		}
		out = append(out, &model.SavedJobDetail{
			SavedJob:     *sj,
			Title:        j.Title,
			Description:  j.Description,
			Requirements: j.Requirements,
			Location:     j.Location,
			JobType:      j.JobType,
			SalaryRange:  j.SalaryRange,
		})
	}
	newestFirst(out, func(sj *model.SavedJobDetail) (time.Time, uint64) { return sj.CreatedAt, sj.ID })
	return out, nil
}

func (s *SavedJobs) Delete(ctx context.Context, seekerID, jobID uint64) error {
	d := s.d
	if err := d.begin(ctx); err != nil {
		return err
	}
	defer d.mu.Unlock()
	for id, sj := range d.savedJobs {
		if sj.SeekerID == seekerID && sj.JobID == jobID {
			delete(d.savedJobs, id)
			return nil
		}
	}
	return repository.ErrSavedJobNotFound
}

// Profiles implements the profile store.
type Profiles struct{ d *DB }

func (s *Profiles) GetSeeker(ctx context.Context, userID uint64) (*model.SeekerProfile, error) {
	d := s.d
	if err := d.begin(ctx); err != nil {
		return nil, err
	}
	defer d.mu.Unlock()
	p, ok := d.seekers[userID]
	u, uok := d.users[userID]
	if !ok || !uok {
		return nil, repository.ErrProfileNotFound
	}
	cp := *p
	cp.Name = u.Name
	cp.Skills = append([]string{}, p.Skills...)
	return &cp, nil
}

func (s *Profiles) GetEmployer(ctx context.Context, userID uint64) (*model.EmployerProfile, error) {
	d := s.d
	if err := d.begin(ctx); err != nil {
		return nil, err
	}
	defer d.mu.Unlock()
	p, ok := d.employers[userID]
	u, uok := d.users[userID]
	if !ok || !uok {
		return nil, repository.ErrProfileNotFound
	}
	cp := *p
	cp.Name = u.Name
	return &cp, nil
}

func (s *Profiles) UpsertSeeker(ctx context.Context, p *model.SeekerProfile) error {
	d := s.d
	if err := d.begin(ctx); err != nil {
		return err
	}
	defer d.mu.Unlock()
	now := d.tick()
	cp := *p
	// Stored the way the skills column round-trips.
	cp.Skills = utils.SplitSkills(utils.JoinSkills(p.Skills))
	cp.CreatedAt, cp.UpdatedAt = now, now
	if old, ok := d.seekers[p.UserID]; ok {
		cp.CreatedAt = old.CreatedAt
	}
	d.seekers[p.UserID] = &cp
	return nil
}

func (s *Profiles) UpsertEmployer(ctx context.Context, p *model.EmployerProfile) error {
	d := s.d
	if err := d.begin(ctx); err != nil {
		return err
	}
	defer d.mu.Unlock()
	now := d.tick()
	cp := *p
	cp.CreatedAt, cp.UpdatedAt = now, now
	if old, ok := d.employers[p.UserID]; ok {
		cp.CreatedAt = old.CreatedAt
	}
	d.employers[p.UserID] = &cp
	return nil
}

// Notifications implements the notification store.
type Notifications struct{ d *DB }

func (s *Notifications) Create(ctx context.Context, n *model.Notification) error {
	d := s.d
	if err := d.begin(ctx); err != nil {
		return err
	}
	defer d.mu.Unlock()
	now := d.tick()
	n.ID = d.id()
	n.Status = model.NotificationUnread
	n.CreatedAt, n.UpdatedAt = now, now
	cp := *n
	d.notifications[n.ID] = &cp
	return nil
}

func (s *Notifications) GetByID(ctx context.Context, id uint64) (*model.Notification, error) {
	d := s.d
	if err := d.begin(ctx); err != nil {
		return nil, err
	}
	defer d.mu.Unlock()
	n, ok := d.notifications[id]
	if !ok {
		return nil, repository.ErrNotificationNotFound
	}
	cp := *n
	return &cp, nil
}

func (s *Notifications) ListByUser(ctx context.Context, userID uint64) ([]*model.Notification, error) {
	d := s.d
	if err := d.begin(ctx); err != nil {
		return nil, err
	}
	defer d.mu.Unlock()
	out := []*model.Notification{}
	for _, n := range d.notifications {
		if n.UserID == userID {
			cp := *n
			out = append(out, &cp)
		}
	}
	newestFirst(out, func(n *model.Notification) (time.Time, uint64) { return n.CreatedAt, n.ID })
	return out, nil
}

func (s *Notifications) MarkRead(ctx context.Context, id uint64) (*model.Notification, error) {
	d := s.d
	if err := d.begin(ctx); err != nil {
		return nil, err
	}
	defer d.mu.Unlock()
	n, ok := d.notifications[id]
	if !ok {
		return nil, repository.ErrNotificationNotFound
	}
	n.Status = model.NotificationRead
	n.UpdatedAt = d.tick()
	cp := *n
	return &cp, nil
}

func (s *Notifications) Delete(ctx context.Context, id uint64) error {
	d := s.d
	if err := d.begin(ctx); err != nil {
		return err
	}
	defer d.mu.Unlock()
	if _, ok := d.notifications[id]; !ok {
		return repository.ErrNotificationNotFound
	}
	delete(d.notifications, id)
	return nil
}
