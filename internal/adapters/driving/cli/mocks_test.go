package cli

import (
	"bytes"
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/invoicename/internal/core/domain"
	"github.com/custodia-labs/invoicename/internal/core/ports/driving"
)

// mockRenameService implements driving.RenameService for CLI tests.
type mockRenameService struct {
	results    []domain.FileResult
	err        error
	inspection *domain.Inspection
	inspectErr error
	processed  *domain.FileResult
	applied    []bool
	runs       []domain.RunOptions
}

func (m *mockRenameService) Run(
	_ context.Context, opts domain.RunOptions, sink func(domain.FileResult),
) (*domain.BatchReport, error) {
	m.runs = append(m.runs, opts)
	if m.err != nil {
		return nil, m.err
	}
	report := domain.NewBatchReport("run-1", opts.Dir, opts.Apply)
	for _, r := range m.results {
		if opts.Apply && r.Status == domain.StatusPlanned {
			r.Status = domain.StatusRenamed
		}
		report.Add(r)
		if sink != nil {
			sink(r)
		}
	}
	return report, nil
}

func (m *mockRenameService) ProcessFile(_ context.Context, path string, apply bool) domain.FileResult {
	m.applied = append(m.applied, apply)
	if m.processed == nil {
		return domain.FileResult{Path: path, Status: domain.StatusUnchanged}
	}
	result := *m.processed
	result.Path = path
	return result
}

func (m *mockRenameService) ApplyPlan(_ context.Context, plan domain.RenamePlan) domain.FileResult {
	return domain.FileResult{Path: plan.Source, Status: domain.StatusRenamed, Plan: &plan}
}

func (m *mockRenameService) Inspect(_ context.Context, path string) (*domain.Inspection, error) {
	if m.inspectErr != nil {
		return nil, m.inspectErr
	}
	insp := *m.inspection
	insp.Path = path
	return &insp, nil
}

// mockWatchService replays fixed results.
type mockWatchService struct {
	results []domain.FileResult
	dir     string
	apply   bool
}

func (m *mockWatchService) Watch(_ context.Context, dir string, apply bool, sink func(domain.FileResult)) error {
	m.dir, m.apply = dir, apply
	for _, r := range m.results {
		sink(r)
	}
	return nil
}

// mockSettingsService resolves InputPath from the path override only.
type mockSettingsService struct {
	stored     map[string]string
	resolveErr error
	setErr     error
	flags      map[string]string
	set        [][2]string
	path       string
}

func (m *mockSettingsService) Resolve(flags map[string]string) (domain.Settings, error) {
	if flags != nil {
		m.flags = flags
	}
	if m.resolveErr != nil {
		return domain.Settings{}, m.resolveErr
	}
	s := domain.DefaultSettings()
	s.InputPath = "/in"
	if p, ok := m.stored[domain.KeyInputPath]; ok {
		s.InputPath = p
	}
	if p, ok := flags[domain.KeyInputPath]; ok {
		s.InputPath = p
	}
	return s, nil
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.set = append(m.set, [2]string{key, value})
	if m.stored == nil {
		m.stored = make(map[string]string)
	}
	m.stored[key] = value
	return nil
}

func (m *mockSettingsService) Stored() map[string]string { return m.stored }

func (m *mockSettingsService) Path() string { return m.path }

// testServices holds the mocks wired into the root command.
type testServices struct {
	rename    *mockRenameService
	watch     *mockWatchService
	settings  *mockSettingsService
	configDir string
	builtWith domain.Settings
}

// setupTestServices wires mocks through the factories and returns a cleanup.
func setupTestServices() (*testServices, func()) {
	ts := &testServices{
		rename:   &mockRenameService{inspection: &domain.Inspection{}},
		watch:    &mockWatchService{},
		settings: &mockSettingsService{path: "/home/u/.invoicename/config.toml"},
	}

	Configure(
		func(dir string) (driving.SettingsService, error) {
			ts.configDir = dir
			return ts.settings, nil
		},
		func(s domain.Settings) (*Services, error) {
			ts.builtWith = s
			return &Services{Rename: ts.rename, Watch: ts.watch}, nil
		},
	)

	return ts, func() {
		Configure(nil, nil)
		settingsService, renameService, watchService = nil, nil, nil
		settings = domain.Settings{}
	}
}

// execute runs the root command with fresh flag state and returns its output.
func execute(args ...string) (string, error) {
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(new(bytes.Buffer))
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag of cmd and its children to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue) //nolint:errcheck // defaults always parse
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func plannedResult(name, proposed string) domain.FileResult {
	plan := domain.RenamePlan{Source: "/in/" + name, Destination: "/in/" + proposed, Name: "ACME SA"}
	return domain.FileResult{Path: plan.Source, Status: domain.StatusPlanned, Plan: &plan}
}
