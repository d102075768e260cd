// Package resolver checks that a manifest's declared dependency ranges
// are simultaneously satisfiable. It merges every requirement for a
// package across the base dependency list, the build requirements and
// all optional groups, reduces the merged set to an interval, and
// reports the conflicting declarations when the interval is empty.
//
// Environment markers are carried through but not evaluated: two
// requirements guarded by mutually exclusive markers still merge.
package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/packwright-labs/packwright/internal/dag"
	"github.com/packwright-labs/packwright/pkg/manifest"
	"github.com/packwright-labs/packwright/pkg/pep440"
)

// Index supplies known release lists for packages. When available, the
// resolver additionally verifies that at least one known release of
// each package matches its merged specifier set.
type Index interface {
	Releases(ctx context.Context, name string) ([]pep440.Version, error)
}

// Config holds resolver configuration.
type Config struct {
	// Index is the optional local package index (nil disables
	// index-backed verification).
	Index Index
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
	// Concurrency bounds parallel per-package checks (default 4).
	Concurrency int
}

// Resolver merges and checks manifest requirements.
type Resolver struct {
	idx         Index
	logger      *slog.Logger
	concurrency int
}

// New creates a resolver.
func New(cfg Config) *Resolver {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	return &Resolver{idx: cfg.Index, logger: logger, concurrency: concurrency}
}

// Package is the merged resolution state for one dependency.
type Package struct {
	// Name is the canonical package name.
	Name string
	// Requirements are every declaration that names the package.
	Requirements []manifest.Requirement
	// Merged is the union of all specifiers across declarations.
	Merged pep440.SpecifierSet
	// Satisfiable reports whether some version can satisfy Merged.
	Satisfiable bool
	// Reason explains the conflict when Satisfiable is false.
	Reason string
	// Conflicting holds a minimal pair of declarations that cannot be
	// satisfied together, when one exists.
	Conflicting []manifest.Requirement

	// KnownReleases is the number of releases the index knows about,
	// -1 when the package was not checked against an index.
	KnownReleases int
	// BestRelease is the highest known release matching Merged, empty
	// when none does or no index was consulted.
	BestRelease string
}

// Result is the outcome of resolving a manifest.
type Result struct {
	// Packages are the merged dependencies, sorted by name.
	Packages []Package
	// GroupOrder is a topological order of the optional groups, with
	// included groups before the groups that include them.
	GroupOrder []string
	// Cycle is the group-inclusion cycle path when groups include each
	// other recursively, nil otherwise.
	Cycle []string
	// Errors collects requirement parse failures and references to
	// unknown groups.
	Errors []error
}

// OK reports whether every declared range is satisfiable and the group
// structure is sound.
func (r *Result) OK() bool {
	if len(r.Errors) > 0 || len(r.Cycle) > 0 {
		return false
	}
	for _, p := range r.Packages {
		if !p.Satisfiable {
			return false
		}
	}
	return true
}

// Conflicts returns the unsatisfiable packages.
func (r *Result) Conflicts() []Package {
	var out []Package
	for _, p := range r.Packages {
		if !p.Satisfiable {
			out = append(out, p)
		}
	}
	return out
}

// Resolve checks the manifest's dependency contract.
func (rv *Resolver) Resolve(ctx context.Context, m *manifest.Manifest) (*Result, error) {
	result := &Result{}

	reqs, errs := m.Requirements()
	result.Errors = append(result.Errors, errs...)

	graph, graphErrs := GroupGraph(m)
	result.Errors = append(result.Errors, graphErrs...)

	if hasCycle, path := graph.HasCycle(); hasCycle {
		result.Cycle = path
	} else {
		order, err := graph.TopologicalSort()
		if err != nil {
			return nil, err
		}
		result.GroupOrder = order
	}

	merged := mergeByPackage(m.Project.Name, reqs)

	names := make([]string, 0, len(merged))
	for name := range merged {
		names = append(names, name)
	}
	sort.Strings(names)

	packages := make([]Package, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rv.concurrency)
	for i, name := range names {
		g.Go(func() error {
			pkg, err := rv.check(gctx, name, merged[name])
			if err != nil {
				return err
			}
			packages[i] = pkg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.Packages = packages
	return result, nil
}

// GroupGraph builds the group-inclusion graph: an edge from g to h
// means group h pulls in group g through a self-referencing extra.
// References to extras that are not declared groups are returned as
// errors.
func GroupGraph(m *manifest.Manifest) (*dag.Graph, []error) {
	graph := dag.NewGraph()
	for _, name := range m.GroupNames() {
		graph.AddNode(name)
	}

	var errs []error
	for _, group := range m.GroupNames() {
		for _, raw := range m.Project.Groups[group] {
			req, err := manifest.ParseRequirement(raw, "groups."+group)
			if err != nil {
				continue // collected by Requirements()
			}
			if !req.IsSelfReference(m.Project.Name) {
				continue
			}
			for _, extra := range req.Extras {
				if !graph.HasNode(extra) {
					errs = append(errs, fmt.Errorf("groups.%s: unknown extra %q of %s", group, extra, m.Project.Name))
					continue
				}
				if extra == group {
					errs = append(errs, fmt.Errorf("groups.%s includes itself", group))
					continue
				}
				if err := graph.AddEdge(extra, group); err != nil {
					errs = append(errs, fmt.Errorf("groups.%s: %w", group, err))
				}
			}
		}
	}
	return graph, errs
}

// mergeByPackage groups requirements by canonical name, dropping
// self-references (they compose groups, they do not pin a version).
func mergeByPackage(projectName string, reqs []manifest.Requirement) map[string][]manifest.Requirement {
	merged := make(map[string][]manifest.Requirement)
	for _, req := range reqs {
		if req.IsSelfReference(projectName) {
			continue
		}
		name := req.CanonicalName()
		merged[name] = append(merged[name], req)
	}
	return merged
}

func (rv *Resolver) check(ctx context.Context, name string, reqs []manifest.Requirement) (Package, error) {
	pkg := Package{
		Name:          name,
		Requirements:  reqs,
		Satisfiable:   true,
		KnownReleases: -1,
	}
	for _, req := range reqs {
		pkg.Merged = append(pkg.Merged, req.Specifiers...)
	}

	interval := pkg.Merged.Interval()
	if empty, reason := interval.Empty(); empty {
		pkg.Satisfiable = false
		pkg.Reason = reason
		pkg.Conflicting = findConflictingPair(reqs)
		if len(pkg.Conflicting) == 2 {
			pkg.Reason = fmt.Sprintf("%s (%s vs %s)",
				reason, describe(pkg.Conflicting[0]), describe(pkg.Conflicting[1]))
		}
		rv.logger.Debug("unsatisfiable dependency", slog.String("package", name), slog.String("reason", pkg.Reason))
		return pkg, nil
	}

	if rv.idx == nil {
		return pkg, nil
	}

	releases, err := rv.idx.Releases(ctx, name)
	if err != nil {
		return pkg, fmt.Errorf("index lookup %s: %w", name, err)
	}
	if releases == nil {
		return pkg, nil
	}

	pkg.KnownReleases = len(releases)
	for _, v := range releases {
		if pkg.Merged.Match(v) {
			if pkg.BestRelease == "" || pep440.MustParse(pkg.BestRelease).Less(v) {
				pkg.BestRelease = v.String()
			}
		}
	}
	if pkg.KnownReleases > 0 && pkg.BestRelease == "" {
		pkg.Satisfiable = false
		pkg.Reason = fmt.Sprintf("no known release of %s satisfies %s (%d releases indexed)",
			name, pkg.Merged.String(), pkg.KnownReleases)
	}
	return pkg, nil
}

// findConflictingPair looks for two declarations whose specifiers
// cannot be satisfied together. Returns nil when no single pair
// explains the conflict (three-way conflicts, or one self-conflicting
// declaration).
func findConflictingPair(reqs []manifest.Requirement) []manifest.Requirement {
	for i := 0; i < len(reqs); i++ {
		for j := i + 1; j < len(reqs); j++ {
			both := pep440.Intersect(reqs[i].Specifiers.Interval(), reqs[j].Specifiers.Interval())
			if empty, _ := both.Empty(); empty {
				return []manifest.Requirement{reqs[i], reqs[j]}
			}
		}
	}
	return nil
}

func describe(req manifest.Requirement) string {
	spec := req.Specifiers.String()
	if spec == "" {
		spec = "*"
	}
	return fmt.Sprintf("%s from %s", spec, req.Origin)
}

// ExpandGroup returns the effective requirements of one optional
// group: its own declarations plus those of every group it pulls in
// through self-referencing extras, self-references excluded.
func ExpandGroup(m *manifest.Manifest, group string) ([]manifest.Requirement, []error) {
	graph, errs := GroupGraph(m)
	if hasCycle, path := graph.HasCycle(); hasCycle {
		return nil, append(errs, fmt.Errorf("recursive group inclusion: %s", strings.Join(path, " -> ")))
	}

	groups := append(graph.Reachable(group), group)
	var out []manifest.Requirement
	for _, g := range groups {
		reqs, es := manifest.ParseRequirements(m.Project.Groups[g], "groups."+g)
		errs = append(errs, es...)
		for _, req := range reqs {
			if req.IsSelfReference(m.Project.Name) {
				continue
			}
			out = append(out, req)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CanonicalName() < out[j].CanonicalName() })
	return out, errs
}
