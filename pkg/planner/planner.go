package planner

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/limaJavier/gradplan/pkg/model"
	"github.com/limaJavier/gradplan/pkg/sat"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

const DefaultMaxCredits = 18

type Request struct {
	Majors     []string
	Completed  []string
	MaxCredits int // Overrides the planner's cap when positive
}

type Plan struct {
	ID      uuid.UUID  `json:"id"`
	Courses []string   `json:"courses"`
	Terms   [][]string `json:"terms"`
}

type Option func(*Planner)

func WithMaxCredits(maxCredits int) Option {
	return func(planner *Planner) {
		planner.maxCredits = maxCredits
	}
}

// WithIncludeCompleted decides whether completed courses of the selection are scheduled as well
func WithIncludeCompleted(include bool) Option {
	return func(planner *Planner) {
		planner.includeCompleted = include
	}
}

// Planner resolves a request through the repositories, then minimizes and schedules it. Each request works
// on its own course graph, formula and scheduler
type Planner struct {
	majors           model.MajorRepository
	courses          model.CourseRepository
	solver           sat.SATSolver
	logger           zerolog.Logger
	maxCredits       int
	includeCompleted bool
}

func New(majors model.MajorRepository, courses model.CourseRepository, solver sat.SATSolver, logger zerolog.Logger, opts ...Option) *Planner {
	planner := &Planner{
		majors:           majors,
		courses:          courses,
		solver:           solver,
		logger:           logger,
		maxCredits:       DefaultMaxCredits,
		includeCompleted: true,
	}
	for _, opt := range opts {
		opt(planner)
	}
	return planner
}

func (planner *Planner) Plan(ctx context.Context, request Request) (Plan, error) {
	id := uuid.New()
	logger := planner.logger.With().Str("plan", id.String()).Logger()

	maxCredits := planner.maxCredits
	if request.MaxCredits > 0 {
		maxCredits = request.MaxCredits
	}

	//** Resolve the request
	majors, completed, err := planner.resolve(ctx, request)
	if err != nil {
		return Plan{}, err
	}
	completedCodes := lo.Map(completed, func(course model.Course, _ int) string { return course.Code })
	logger.Debug().
		Int("majors", len(majors)).
		Int("completed", len(completed)).
		Int("max_credits", maxCredits).
		Msg("request resolved")

	catalog, err := planner.materialize(ctx, majors, completed)
	if err != nil {
		return Plan{}, err
	}
	logger.Debug().Int("courses", len(catalog.Courses())).Msg("course graph materialized")

	//** Minimize
	selection, err := NewMinimizer(planner.solver, catalog).FindMinimalCourses(majors, completedCodes)
	if err != nil {
		return Plan{}, err
	}
	logger.Debug().
		Uint64("variables", selection.Variables).
		Int("constraints", selection.Constraints).
		Int("cost", selection.Cost).
		Msg("course set minimized")

	//** Schedule
	courses := lo.FilterMap(selection.Courses, func(code string, _ int) (model.Course, bool) { return catalog.Lookup(code) })
	var opts []SchedulerOption
	if !planner.includeCompleted {
		opts = append(opts, WithSatisfied(completedCodes...))
	}
	scheduler, err := NewScheduler(courses, maxCredits, opts...)
	if err != nil {
		return Plan{}, err
	}
	terms, err := scheduler.Build()
	if err != nil {
		return Plan{}, err
	}

	plan := Plan{
		ID:      id,
		Courses: selection.Courses,
		Terms:   Codes(terms),
	}
	logger.Info().Int("courses", len(plan.Courses)).Int("terms", len(plan.Terms)).Msg("plan built")
	return plan, nil
}

// resolve looks majors and completed courses up concurrently. Unknown names and codes are dropped
func (planner *Planner) resolve(ctx context.Context, request Request) ([]model.Major, []model.Course, error) {
	majors := make([]*model.Major, len(request.Majors))
	completed := make([]*model.Course, len(request.Completed))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, name := range request.Majors {
		i, name := i, name
		group.Go(func() error {
			major, err := planner.majors.FindByName(groupCtx, name)
			if errors.Is(err, model.ErrNotFound) {
				planner.logger.Warn().Str("major", name).Msg("unknown major dropped")
				return nil
			} else if err != nil {
				return fmt.Errorf("cannot resolve major \"%v\": %w", name, err)
			}
			majors[i] = &major
			return nil
		})
	}
	for i, code := range request.Completed {
		i, code := i, code
		group.Go(func() error {
			course, err := planner.courses.FindByCourseCode(groupCtx, code)
			if errors.Is(err, model.ErrNotFound) {
				planner.logger.Warn().Str("course", code).Msg("unknown completed course dropped")
				return nil
			} else if err != nil {
				return fmt.Errorf("cannot resolve course \"%v\": %w", code, err)
			}
			completed[i] = &course
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, nil, err
	}

	return lo.UniqBy(deref(majors), func(major model.Major) string { return major.Name }),
		lo.UniqBy(deref(completed), func(course model.Course) string { return course.Code }),
		nil
}

// materialize fetches, level by level, every course referenced by the majors plus their prerequisite closure.
// Missing codes are left out so that encoding reports them
func (planner *Planner) materialize(ctx context.Context, majors []model.Major, completed []model.Course) (*model.Catalog, error) {
	seen := make(map[string]bool)
	courses := make([]model.Course, 0)

	var frontier []string
	for _, major := range majors {
		for _, track := range major.Tracks {
			for _, requirement := range track.Requirements {
				frontier = append(frontier, requirement.Courses...)
			}
		}
		for _, requirement := range major.Requirements {
			frontier = append(frontier, requirement.Courses...)
		}
	}
	for _, course := range completed {
		seen[course.Code] = true
		courses = append(courses, course)
		frontier = append(frontier, prereqCodes(course)...)
	}

	for len(frontier) > 0 {
		level := lo.Filter(lo.Uniq(frontier), func(code string, _ int) bool { return !seen[code] })
		for _, code := range level {
			seen[code] = true
		}

		found := make([]*model.Course, len(level))
		group, groupCtx := errgroup.WithContext(ctx)
		for i, code := range level {
			i, code := i, code
			group.Go(func() error {
				course, err := planner.courses.FindByCourseCode(groupCtx, code)
				if errors.Is(err, model.ErrNotFound) {
					return nil
				} else if err != nil {
					return fmt.Errorf("cannot resolve course \"%v\": %w", code, err)
				}
				found[i] = &course
				return nil
			})
		}
		if err := group.Wait(); err != nil {
			return nil, err
		}

		frontier = nil
		for _, course := range deref(found) {
			courses = append(courses, course)
			frontier = append(frontier, prereqCodes(course)...)
		}
	}

	return model.NewCatalog(courses, nil)
}

func prereqCodes(course model.Course) []string {
	return lo.FlatMap(course.Prereqs, func(group model.PrereqGroup, _ int) []string { return group.Courses })
}

func deref[T any](values []*T) []T {
	return lo.FilterMap(values, func(value *T, _ int) (T, bool) {
		if value == nil {
			var zero T
			return zero, false
		}
		return *value, true
	})
}
