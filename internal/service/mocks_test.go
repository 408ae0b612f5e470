package service

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/paul-ayesiga/portfolio-service/internal/apperror"
	"github.com/paul-ayesiga/portfolio-service/internal/model"
	"github.com/paul-ayesiga/portfolio-service/internal/repository"
)

// =========================================================================
// MOCK REPOSITORIES
// =========================================================================
//
// In-memory fakes of the repository interfaces. They count calls so tests
// can assert that a cached read skipped the store, or that a rejected write
// never reached it.

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedClock(t time.Time) clock {
	return func() time.Time { return t }
}

type callCounter struct {
	mu    sync.Mutex
	calls map[string]int
}

func (c *callCounter) hit(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.calls == nil {
		c.calls = map[string]int{}
	}
	c.calls[name]++
}

func (c *callCounter) count(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[name]
}

// --- projects ---

type mockProjectRepo struct {
	callCounter
	projects map[int64]model.Project
	nextID   int64
}

var _ repository.ProjectRepository = (*mockProjectRepo)(nil)

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{projects: map[int64]model.Project{}}
}

func (m *mockProjectRepo) sorted(keep func(model.Project) bool) []model.Project {
	out := make([]model.Project, 0, len(m.projects))
	for _, p := range m.projects {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func (m *mockProjectRepo) ListProjects(context.Context) ([]model.Project, error) {
	m.hit("ListProjects")
	return m.sorted(func(model.Project) bool { return true }), nil
}

func (m *mockProjectRepo) ListFeaturedProjects(context.Context) ([]model.Project, error) {
	m.hit("ListFeaturedProjects")
	return m.sorted(func(p model.Project) bool { return p.Featured }), nil
}

func (m *mockProjectRepo) ListProjectsByCategory(_ context.Context, c string) ([]model.Project, error) {
	m.hit("ListProjectsByCategory")
	return m.sorted(func(p model.Project) bool { return contains(p.Categories, c) }), nil
}

func (m *mockProjectRepo) ListProjectsByTechnology(_ context.Context, t string) ([]model.Project, error) {
	m.hit("ListProjectsByTechnology")
	return m.sorted(func(p model.Project) bool { return contains(p.Technologies, t) }), nil
}

func (m *mockProjectRepo) GetProject(_ context.Context, id int64) (*model.Project, error) {
	m.hit("GetProject")
	p, ok := m.projects[id]
	if !ok {
		return nil, apperror.NotFound("Project", strconv.FormatInt(id, 10))
	}
	return &p, nil
}

func (m *mockProjectRepo) CreateProject(_ context.Context, p *model.Project) error {
	m.hit("CreateProject")
	m.nextID++
	p.ID = m.nextID
	m.projects[p.ID] = *p
	return nil
}

func (m *mockProjectRepo) UpdateProject(_ context.Context, p *model.Project) error {
	m.hit("UpdateProject")
	if _, ok := m.projects[p.ID]; !ok {
		return apperror.NotFound("Project", strconv.FormatInt(p.ID, 10))
	}
	m.projects[p.ID] = *p
	return nil
}

func (m *mockProjectRepo) DeleteProject(_ context.Context, id int64) error {
	m.hit("DeleteProject")
	if _, ok := m.projects[id]; !ok {
		return apperror.NotFound("Project", strconv.FormatInt(id, 10))
	}
	delete(m.projects, id)
	return nil
}

// --- skills ---

type mockSkillRepo struct {
	callCounter
	skills map[int64]model.Skill
	nextID int64
}

var _ repository.SkillRepository = (*mockSkillRepo)(nil)

func newMockSkillRepo() *mockSkillRepo {
	return &mockSkillRepo{skills: map[int64]model.Skill{}}
}

func (m *mockSkillRepo) sorted(keep func(model.Skill) bool) []model.Skill {
	out := make([]model.Skill, 0, len(m.skills))
	for _, s := range m.skills {
		if keep(s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *mockSkillRepo) ListSkills(context.Context) ([]model.Skill, error) {
	m.hit("ListSkills")
	return m.sorted(func(model.Skill) bool { return true }), nil
}

func (m *mockSkillRepo) ListSkillsByCategory(_ context.Context, c string) ([]model.Skill, error) {
	m.hit("ListSkillsByCategory")
	return m.sorted(func(s model.Skill) bool { return s.Category == c }), nil
}

func (m *mockSkillRepo) ListSkillsByMinProficiency(_ context.Context, level int) ([]model.Skill, error) {
	m.hit("ListSkillsByMinProficiency")
	return m.sorted(func(s model.Skill) bool { return s.ProficiencyLevel != nil && *s.ProficiencyLevel >= level }), nil
}

func (m *mockSkillRepo) GetSkill(_ context.Context, id int64) (*model.Skill, error) {
	m.hit("GetSkill")
	s, ok := m.skills[id]
	if !ok {
		return nil, apperror.NotFound("Skill", strconv.FormatInt(id, 10))
	}
	return &s, nil
}

func (m *mockSkillRepo) CreateSkill(_ context.Context, s *model.Skill) error {
	m.hit("CreateSkill")
	m.nextID++
	s.ID = m.nextID
	m.skills[s.ID] = *s
	return nil
}

func (m *mockSkillRepo) UpdateSkill(_ context.Context, s *model.Skill) error {
	m.hit("UpdateSkill")
	if _, ok := m.skills[s.ID]; !ok {
		return apperror.NotFound("Skill", strconv.FormatInt(s.ID, 10))
	}
	m.skills[s.ID] = *s
	return nil
}

func (m *mockSkillRepo) DeleteSkill(_ context.Context, id int64) error {
	m.hit("DeleteSkill")
	if _, ok := m.skills[id]; !ok {
		return apperror.NotFound("Skill", strconv.FormatInt(id, 10))
	}
	delete(m.skills, id)
	return nil
}

// --- experiences ---

type mockExperienceRepo struct {
	callCounter
	experiences map[int64]model.Experience
	nextID      int64
}

var _ repository.ExperienceRepository = (*mockExperienceRepo)(nil)

func newMockExperienceRepo() *mockExperienceRepo {
	return &mockExperienceRepo{experiences: map[int64]model.Experience{}}
}

func (m *mockExperienceRepo) sorted(keep func(model.Experience) bool) []model.Experience {
	out := make([]model.Experience, 0, len(m.experiences))
	for _, e := range m.experiences {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *mockExperienceRepo) ListExperiences(context.Context) ([]model.Experience, error) {
	m.hit("ListExperiences")
	return m.sorted(func(model.Experience) bool { return true }), nil
}

func (m *mockExperienceRepo) ListCurrentExperiences(context.Context) ([]model.Experience, error) {
	m.hit("ListCurrentExperiences")
	return m.sorted(func(e model.Experience) bool { return e.Current }), nil
}

func (m *mockExperienceRepo) GetExperience(_ context.Context, id int64) (*model.Experience, error) {
	m.hit("GetExperience")
	e, ok := m.experiences[id]
	if !ok {
		return nil, apperror.NotFound("Experience", strconv.FormatInt(id, 10))
	}
	return &e, nil
}

func (m *mockExperienceRepo) CreateExperience(_ context.Context, e *model.Experience) error {
	m.hit("CreateExperience")
	m.nextID++
	e.ID = m.nextID
	m.experiences[e.ID] = *e
	return nil
}

func (m *mockExperienceRepo) UpdateExperience(_ context.Context, e *model.Experience) error {
	m.hit("UpdateExperience")
	if _, ok := m.experiences[e.ID]; !ok {
		return apperror.NotFound("Experience", strconv.FormatInt(e.ID, 10))
	}
	m.experiences[e.ID] = *e
	return nil
}

func (m *mockExperienceRepo) DeleteExperience(_ context.Context, id int64) error {
	m.hit("DeleteExperience")
	if _, ok := m.experiences[id]; !ok {
		return apperror.NotFound("Experience", strconv.FormatInt(id, 10))
	}
	delete(m.experiences, id)
	return nil
}

// --- profiles ---

type mockProfileRepo struct {
	callCounter
	profiles map[int64]model.UserProfile
	nextID   int64
}

var _ repository.ProfileRepository = (*mockProfileRepo)(nil)

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{profiles: map[int64]model.UserProfile{}}
}

func (m *mockProfileRepo) ListProfiles(context.Context) ([]model.UserProfile, error) {
	m.hit("ListProfiles")
	out := make([]model.UserProfile, 0, len(m.profiles))
	for _, p := range m.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockProfileRepo) GetProfile(_ context.Context, id int64) (*model.UserProfile, error) {
	m.hit("GetProfile")
	p, ok := m.profiles[id]
	if !ok {
		return nil, apperror.NotFound("User profile", strconv.FormatInt(id, 10))
	}
	return &p, nil
}

func (m *mockProfileRepo) GetProfileByUsername(_ context.Context, username string) (*model.UserProfile, error) {
	m.hit("GetProfileByUsername")
	for _, p := range m.profiles {
		if p.Username == username {
			return &p, nil
		}
	}
	return nil, apperror.NotFoundBy("User profile", "username", username)
}

func (m *mockProfileRepo) CreateProfile(_ context.Context, p *model.UserProfile) error {
	m.hit("CreateProfile")
	for _, existing := range m.profiles {
		if existing.Username == p.Username {
			return apperror.Conflict("User profile", p.Username)
		}
	}
	m.nextID++
	p.ID = m.nextID
	m.profiles[p.ID] = *p
	return nil
}

func (m *mockProfileRepo) UpdateProfile(_ context.Context, p *model.UserProfile) error {
	m.hit("UpdateProfile")
	if _, ok := m.profiles[p.ID]; !ok {
		return apperror.NotFound("User profile", strconv.FormatInt(p.ID, 10))
	}
	m.profiles[p.ID] = *p
	return nil
}

func (m *mockProfileRepo) DeleteProfile(_ context.Context, id int64) error {
	m.hit("DeleteProfile")
	if _, ok := m.profiles[id]; !ok {
		return apperror.NotFound("User profile", strconv.FormatInt(id, 10))
	}
	delete(m.profiles, id)
	return nil
}
