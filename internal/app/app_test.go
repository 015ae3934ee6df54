package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pipgen/internal/adapters/fs"
	"go.trai.ch/pipgen/internal/app"
	"go.trai.ch/pipgen/internal/core/domain"
	"go.trai.ch/pipgen/internal/core/ports/mocks"
	"go.trai.ch/pipgen/internal/engine/merge"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	loader    *mocks.MockConfigLoader
	store     *mocks.MockLockStore
	parser    *mocks.MockRequirementsParser
	resolvers *mocks.MockResolverProvider
	resolver  *mocks.MockResolver
	output    *mocks.MockOutputWriter
	logger    *mocks.MockLogger
	app       *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		loader:    mocks.NewMockConfigLoader(ctrl),
		store:     mocks.NewMockLockStore(ctrl),
		parser:    mocks.NewMockRequirementsParser(ctrl),
		resolvers: mocks.NewMockResolverProvider(ctrl),
		resolver:  mocks.NewMockResolver(ctrl),
		output:    mocks.NewMockOutputWriter(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
	}
	f.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	f.app = app.New(
		f.loader,
		f.store,
		f.parser,
		f.resolvers,
		merge.New(f.logger),
		f.output,
		fs.NewHasher(),
		f.logger,
	)
	return f
}

func baseConfig() *domain.Config {
	return &domain.Config{
		Root:          "/work",
		LockFile:      "/work/requirements.lock.json",
		Requirements:  []string{"/work/requirements.txt"},
		RulesRepo:     domain.DefaultRulesRepo,
		PythonVersion: 3,
		Platform:      "linux",
		Resolver:      domain.ResolverConfig{Command: []string{"resolve"}, Dir: "/work"},
		Output: domain.OutputConfig{
			BzlFile:       "/work/third_party/requirements.bzl",
			RepositoryDir: "/work/third_party/pip",
		},
	}
}

func lockedFile() *domain.LockFile {
	lf := domain.NewLockFile()
	lf.Sources["six_1_16_0_py2_py3_none_any"] = domain.Source{
		URL:    "https://files.example/six-1.16.0-py2.py3-none-any.whl",
		SHA256: "six",
	}
	lf.Sources["six_1_15_0_py2_py3_none_any"] = domain.Source{
		URL:    "https://files.example/six-1.15.0-py2.py3-none-any.whl",
		SHA256: "old",
	}
	lf.Environments["linux_py3"] = domain.Environment{
		SysPlatform:   "linux",
		PythonVersion: 3,
		Requirements: map[string]domain.Requirement{
			"six": {Version: "1.16.0", Source: "six_1_16_0_py2_py3_none_any", Dependencies: []string{}, Extras: []string{}},
		},
	}
	lf.Environments["darwin_py3"] = domain.Environment{
		SysPlatform:   "darwin",
		PythonVersion: 3,
		Requirements: map[string]domain.Requirement{
			"six": {Version: "1.15.0", Source: "six_1_15_0_py2_py3_none_any", Dependencies: []string{}, Extras: []string{}},
		},
	}
	return lf
}

func resolvedRecords() []domain.ResolvedRequirement {
	return []domain.ResolvedRequirement{
		{
			Name:         "requests",
			Version:      "2.31.0",
			IsDirect:     true,
			Dependencies: []string{"six"},
			Source:       domain.ResolvedSource{URL: "https://files.example/requests-2.31.0-py3-none-any.whl", SHA256: "req"},
		},
		{
			Name:    "six",
			Version: "1.16.0",
			Source:  domain.ResolvedSource{URL: "https://files.example/six-1.16.0-py2.py3-none-any.whl", SHA256: "six"},
		},
	}
}

var linuxPy3 = domain.EnvironmentKey{SysPlatform: "linux", PythonVersion: 3}

func TestApp_Lock(t *testing.T) {
	f := newFixture(t)
	cfg := baseConfig()
	released := false

	f.loader.EXPECT().Load(".").Return(cfg, nil)
	f.store.EXPECT().Acquire(gomock.Any(), cfg.LockFile).Return(func() error {
		released = true
		return nil
	}, nil)
	f.store.EXPECT().Load(cfg.LockFile).Return(lockedFile(), nil)
	f.parser.EXPECT().Parse("/work/requirements.txt").Return(&domain.RequirementSet{
		Requests: []domain.PackageRequest{{Name: "requests", Specifier: ">=2", IsDirect: true, Origin: "/work/requirements.txt:1"}},
		Options:  []string{"--index-url", "https://pypi.example/simple"},
	}, nil)
	f.resolvers.EXPECT().ForConfig(cfg.Resolver).Return(f.resolver, nil)
	f.resolver.EXPECT().Resolve(gomock.Any(), linuxPy3, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.EnvironmentKey, set domain.RequirementSet) ([]domain.ResolvedRequirement, error) {
			require.Len(t, set.Requests, 2)
			assert.Equal(t, "requests", set.Requests[0].Name)
			assert.True(t, set.Requests[0].IsDirect)
			assert.Equal(t, "six", set.Requests[1].Name)
			assert.Equal(t, "==1.16.0", set.Requests[1].Specifier)
			assert.Equal(t, []string{"--index-url", "https://pypi.example/simple"}, set.Options)
			return resolvedRecords(), nil
		})
	f.store.EXPECT().Dump(gomock.Any(), cfg.LockFile).DoAndReturn(func(lf *domain.LockFile, _ string) error {
		linux := lf.Environments["linux_py3"].Requirements
		assert.Len(t, linux, 2)
		assert.True(t, linux["requests"].IsDirect)
		assert.Equal(t, []string{"six"}, linux["requests"].Dependencies)
		assert.Equal(t, "1.15.0", lf.Environments["darwin_py3"].Requirements["six"].Version)
		assert.Equal(t, "//wheels", lf.LocalWheelsPackage)
		return nil
	})

	err := f.app.Lock(context.Background(), app.LockOptions{LocalWheelsPackage: "//wheels"})
	require.NoError(t, err)
	assert.True(t, released)
}

func TestApp_Lock_UpdateSkipsPins(t *testing.T) {
	tests := []struct {
		name string
		opts app.LockOptions
	}{
		{name: "update all", opts: app.LockOptions{UpdateAll: true}},
		{name: "update one", opts: app.LockOptions{Update: []string{"Six"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			cfg := baseConfig()

			f.loader.EXPECT().Load(".").Return(cfg, nil)
			f.store.EXPECT().Acquire(gomock.Any(), cfg.LockFile).Return(func() error { return nil }, nil)
			f.store.EXPECT().Load(cfg.LockFile).Return(lockedFile(), nil)
			f.parser.EXPECT().Parse(gomock.Any()).Return(&domain.RequirementSet{
				Requests: []domain.PackageRequest{{Name: "requests", IsDirect: true}},
			}, nil)
			f.resolvers.EXPECT().ForConfig(gomock.Any()).Return(f.resolver, nil)
			f.resolver.EXPECT().Resolve(gomock.Any(), linuxPy3, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ domain.EnvironmentKey, set domain.RequirementSet) ([]domain.ResolvedRequirement, error) {
					require.Len(t, set.Requests, 1)
					assert.Equal(t, "requests", set.Requests[0].Name)
					return resolvedRecords(), nil
				})
			f.store.EXPECT().Dump(gomock.Any(), cfg.LockFile).Return(nil)

			require.NoError(t, f.app.Lock(context.Background(), tt.opts))
		})
	}
}

func TestApp_Lock_Overrides(t *testing.T) {
	f := newFixture(t)
	cfg := baseConfig()
	darwinPy2 := domain.EnvironmentKey{SysPlatform: "darwin", PythonVersion: 2}

	f.loader.EXPECT().Load(".").Return(cfg, nil)
	f.store.EXPECT().Acquire(gomock.Any(), "other.lock.json").Return(func() error { return nil }, nil)
	f.store.EXPECT().Load("other.lock.json").Return(domain.NewLockFile(), nil)
	f.parser.EXPECT().Parse("dev.txt").Return(&domain.RequirementSet{}, nil)
	f.resolvers.EXPECT().ForConfig(domain.ResolverConfig{
		Command:      []string{"resolve"},
		ResolvedFile: "resolved.json",
		Dir:          "/work",
	}).Return(f.resolver, nil)
	f.resolver.EXPECT().Resolve(gomock.Any(), darwinPy2, gomock.Any()).Return(nil, nil)
	f.store.EXPECT().Dump(gomock.Any(), "other.lock.json").DoAndReturn(func(lf *domain.LockFile, _ string) error {
		assert.Contains(t, lf.Environments, "darwin_py2")
		return nil
	})

	err := f.app.Lock(context.Background(), app.LockOptions{
		Requirements:  []string{"dev.txt"},
		LockFile:      "other.lock.json",
		PythonVersion: 2,
		Platform:      "darwin",
		Resolved:      "resolved.json",
	})
	require.NoError(t, err)
}

func TestApp_Lock_Errors(t *testing.T) {
	t.Run("configuration", func(t *testing.T) {
		f := newFixture(t)
		f.loader.EXPECT().Load(".").Return(nil, errors.New("bad yaml"))

		err := f.app.Lock(context.Background(), app.LockOptions{})
		require.Error(t, err)
		assert.ErrorContains(t, err, "failed to load configuration")
	})

	t.Run("no requirements", func(t *testing.T) {
		f := newFixture(t)
		cfg := baseConfig()
		cfg.Requirements = nil
		f.loader.EXPECT().Load(".").Return(cfg, nil)

		err := f.app.Lock(context.Background(), app.LockOptions{})
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrMissingArguments.Error())
	})

	t.Run("unsupported python version", func(t *testing.T) {
		f := newFixture(t)
		f.loader.EXPECT().Load(".").Return(baseConfig(), nil)

		err := f.app.Lock(context.Background(), app.LockOptions{PythonVersion: 4})
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrInvalidPythonVersion.Error())
	})

	t.Run("lock busy", func(t *testing.T) {
		f := newFixture(t)
		cfg := baseConfig()
		f.loader.EXPECT().Load(".").Return(cfg, nil)
		f.store.EXPECT().Acquire(gomock.Any(), cfg.LockFile).Return(nil, domain.ErrLockFileBusy)

		err := f.app.Lock(context.Background(), app.LockOptions{})
		require.ErrorIs(t, err, domain.ErrLockFileBusy)
	})

	t.Run("resolution failure keeps lock file", func(t *testing.T) {
		f := newFixture(t)
		cfg := baseConfig()
		released := false

		f.loader.EXPECT().Load(".").Return(cfg, nil)
		f.store.EXPECT().Acquire(gomock.Any(), cfg.LockFile).Return(func() error {
			released = true
			return nil
		}, nil)
		f.store.EXPECT().Load(cfg.LockFile).Return(lockedFile(), nil)
		f.parser.EXPECT().Parse(gomock.Any()).Return(&domain.RequirementSet{}, nil)
		f.resolvers.EXPECT().ForConfig(gomock.Any()).Return(f.resolver, nil)
		f.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, &domain.ResolutionError{Packages: []string{"broken"}})

		err := f.app.Lock(context.Background(), app.LockOptions{})
		var resErr *domain.ResolutionError
		require.ErrorAs(t, err, &resErr)
		assert.Equal(t, []string{"broken"}, resErr.Packages)
		assert.True(t, released)
	})

	t.Run("release failure is a warning", func(t *testing.T) {
		f := newFixture(t)
		cfg := baseConfig()

		f.loader.EXPECT().Load(".").Return(cfg, nil)
		f.store.EXPECT().Acquire(gomock.Any(), cfg.LockFile).Return(func() error {
			return errors.New("unlock failed")
		}, nil)
		f.store.EXPECT().Load(cfg.LockFile).Return(nil, domain.ErrLockFileParse)
		f.logger.EXPECT().Warn(gomock.Any()).Times(1)

		err := f.app.Lock(context.Background(), app.LockOptions{})
		require.ErrorIs(t, err, domain.ErrLockFileParse)
	})
}

func TestApp_Generate(t *testing.T) {
	f := newFixture(t)
	cfg := baseConfig()

	var firstStamp domain.Stamp
	var firstRules []byte
	f.loader.EXPECT().Load(".").Return(cfg, nil)
	f.store.EXPECT().Load(cfg.LockFile).Return(lockedFile(), nil)
	f.output.EXPECT().UpToDate(cfg.Output.BzlFile, gomock.Any(), cfg.Output.RepositoryDir, gomock.Any()).Return(false, nil)
	writeRepo := f.output.EXPECT().WriteRepository(cfg.Output.RepositoryDir, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ string, packages []domain.GeneratedPackage, stamp domain.Stamp) error {
			require.Len(t, packages, 1)
			assert.Equal(t, "six", packages[0].Name)
			assert.Equal(t, []string{"six"}, stamp.Packages)
			assert.Equal(t, cfg.Output.BzlFile, stamp.BzlFile)
			assert.NotEmpty(t, stamp.Digest)
			firstStamp = stamp
			return nil
		})
	f.output.EXPECT().WriteSourceRules(cfg.Output.BzlFile, gomock.Any()).
		DoAndReturn(func(_ string, content []byte) error {
			assert.Contains(t, string(content), `remote_wheel(`)
			assert.Contains(t, string(content), `"pip__six_1_16_0_py2_py3_none_any"`)
			firstRules = content
			return nil
		}).After(writeRepo)

	require.NoError(t, f.app.Generate(context.Background(), app.GenerateOptions{}))

	// A second run over the same lock file finds matching output and writes nothing.
	f.loader.EXPECT().Load(".").Return(baseConfig(), nil)
	f.store.EXPECT().Load(cfg.LockFile).Return(lockedFile(), nil)
	f.output.EXPECT().UpToDate(cfg.Output.BzlFile, gomock.Any(), cfg.Output.RepositoryDir, gomock.Any()).
		DoAndReturn(func(_ string, rules []byte, _ string, stamp domain.Stamp) (bool, error) {
			assert.Equal(t, firstRules, rules)
			assert.Equal(t, firstStamp, stamp)
			return true, nil
		})

	require.NoError(t, f.app.Generate(context.Background(), app.GenerateOptions{}))
}

func TestApp_Generate_StampTracksBzlFile(t *testing.T) {
	f := newFixture(t)
	cfg := baseConfig()

	var stamps []domain.Stamp
	record := func(_ string, _ []domain.GeneratedPackage, stamp domain.Stamp) error {
		stamps = append(stamps, stamp)
		return nil
	}

	f.loader.EXPECT().Load(".").Return(cfg, nil)
	f.store.EXPECT().Load(cfg.LockFile).Return(lockedFile(), nil)
	f.output.EXPECT().UpToDate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
	f.output.EXPECT().WriteRepository(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(record)
	f.output.EXPECT().WriteSourceRules(cfg.Output.BzlFile, gomock.Any()).Return(nil)
	require.NoError(t, f.app.Generate(context.Background(), app.GenerateOptions{}))

	// Same lock file, new .bzl location: the output is checked against the new path.
	moved := "/work/build/requirements.bzl"
	f.loader.EXPECT().Load(".").Return(baseConfig(), nil)
	f.store.EXPECT().Load(cfg.LockFile).Return(lockedFile(), nil)
	f.output.EXPECT().UpToDate(moved, gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ string, _ []byte, _ string, stamp domain.Stamp) (bool, error) {
			assert.Equal(t, moved, stamp.BzlFile)
			return false, nil
		})
	f.output.EXPECT().WriteRepository(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(record)
	f.output.EXPECT().WriteSourceRules(moved, gomock.Any()).Return(nil)
	require.NoError(t, f.app.Generate(context.Background(), app.GenerateOptions{BzlFile: moved}))

	require.Len(t, stamps, 2)
	assert.Equal(t, stamps[0].Digest, stamps[1].Digest)
	assert.NotEqual(t, stamps[0].BzlFile, stamps[1].BzlFile)
}

func TestApp_Generate_Force(t *testing.T) {
	f := newFixture(t)
	cfg := baseConfig()

	f.loader.EXPECT().Load(".").Return(cfg, nil)
	f.store.EXPECT().Load("lock.json").Return(lockedFile(), nil)
	f.output.EXPECT().WriteRepository("out", gomock.Any(), gomock.Any()).Return(nil)
	f.output.EXPECT().WriteSourceRules("rules.bzl", gomock.Any()).Return(nil)

	err := f.app.Generate(context.Background(), app.GenerateOptions{
		LockFile:      "lock.json",
		BzlFile:       "rules.bzl",
		RepositoryDir: "out",
		RulesRepo:     "my_rules",
		Force:         true,
	})
	require.NoError(t, err)
}

func TestApp_Generate_WarnsUnpinned(t *testing.T) {
	f := newFixture(t)
	cfg := baseConfig()
	lf := lockedFile()
	lf.Sources["six_1_16_0_py2_py3_none_any"] = domain.Source{URL: "https://files.example/six-1.16.0-py2.py3-none-any.whl"}

	f.loader.EXPECT().Load(".").Return(cfg, nil)
	f.store.EXPECT().Load(cfg.LockFile).Return(lf, nil)
	f.logger.EXPECT().Warn("source six_1_16_0_py2_py3_none_any has no sha256, its download will not be verified").Times(1)
	f.output.EXPECT().UpToDate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
	f.output.EXPECT().WriteRepository(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.output.EXPECT().WriteSourceRules(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, f.app.Generate(context.Background(), app.GenerateOptions{}))
}

func TestApp_Generate_WarnsEmptyLockFile(t *testing.T) {
	f := newFixture(t)
	cfg := baseConfig()

	f.loader.EXPECT().Load(".").Return(cfg, nil)
	f.store.EXPECT().Load("missing.lock.json").Return(domain.NewLockFile(), nil)
	f.logger.EXPECT().Warn("lock file missing.lock.json has no environments, no packages will be generated").Times(1)
	f.output.EXPECT().UpToDate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
	f.output.EXPECT().WriteRepository(gomock.Any(), gomock.Len(0), gomock.Any()).Return(nil)
	f.output.EXPECT().WriteSourceRules(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, f.app.Generate(context.Background(), app.GenerateOptions{LockFile: "missing.lock.json"}))
}

func TestApp_Generate_Errors(t *testing.T) {
	t.Run("missing output", func(t *testing.T) {
		f := newFixture(t)
		cfg := baseConfig()
		cfg.Output = domain.OutputConfig{}
		f.loader.EXPECT().Load(".").Return(cfg, nil)

		err := f.app.Generate(context.Background(), app.GenerateOptions{})
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrMissingArguments.Error())
	})

	t.Run("local wheel without package", func(t *testing.T) {
		f := newFixture(t)
		cfg := baseConfig()
		lf := lockedFile()
		lf.Sources["six_1_16_0_py2_py3_none_any"] = domain.Source{File: "six-1.16.0-py2.py3-none-any.whl"}

		f.loader.EXPECT().Load(".").Return(cfg, nil)
		f.store.EXPECT().Load(cfg.LockFile).Return(lf, nil)

		err := f.app.Generate(context.Background(), app.GenerateOptions{})
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrLocalWheelsPackageUnset.Error())
	})

	t.Run("stamp unreadable", func(t *testing.T) {
		f := newFixture(t)
		cfg := baseConfig()

		f.loader.EXPECT().Load(".").Return(cfg, nil)
		f.store.EXPECT().Load(cfg.LockFile).Return(lockedFile(), nil)
		f.output.EXPECT().UpToDate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, domain.ErrStampReadFailed)

		err := f.app.Generate(context.Background(), app.GenerateOptions{})
		require.ErrorIs(t, err, domain.ErrStampReadFailed)
	})

	t.Run("repository write failure leaves source rules alone", func(t *testing.T) {
		f := newFixture(t)
		cfg := baseConfig()

		f.loader.EXPECT().Load(".").Return(cfg, nil)
		f.store.EXPECT().Load(cfg.LockFile).Return(lockedFile(), nil)
		f.output.EXPECT().UpToDate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		f.output.EXPECT().WriteRepository(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.ErrOutputWriteFailed)
		f.output.EXPECT().WriteSourceRules(gomock.Any(), gomock.Any()).Times(0)

		err := f.app.Generate(context.Background(), app.GenerateOptions{})
		require.ErrorIs(t, err, domain.ErrOutputWriteFailed)
	})

	t.Run("source rules write failure", func(t *testing.T) {
		f := newFixture(t)
		cfg := baseConfig()

		f.loader.EXPECT().Load(".").Return(cfg, nil)
		f.store.EXPECT().Load(cfg.LockFile).Return(lockedFile(), nil)
		f.output.EXPECT().UpToDate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		f.output.EXPECT().WriteRepository(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.output.EXPECT().WriteSourceRules(gomock.Any(), gomock.Any()).Return(domain.ErrOutputWriteFailed)

		err := f.app.Generate(context.Background(), app.GenerateOptions{})
		require.ErrorIs(t, err, domain.ErrOutputWriteFailed)
	})
}

type configurableLogger struct {
	*mocks.MockLogger
	json    bool
	verbose bool
}

func (l *configurableLogger) SetJSON(enable bool)    { l.json = enable }
func (l *configurableLogger) SetVerbose(enable bool) { l.verbose = enable }

func TestApp_ConfigureLogging(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := &configurableLogger{MockLogger: mocks.NewMockLogger(ctrl)}
	a := app.New(nil, nil, nil, nil, nil, nil, nil, log)

	a.ConfigureLogging(true, true)
	assert.True(t, log.json)
	assert.True(t, log.verbose)

	// Loggers without runtime switches are left alone.
	app.New(nil, nil, nil, nil, nil, nil, nil, mocks.NewMockLogger(ctrl)).ConfigureLogging(true, false)
}
