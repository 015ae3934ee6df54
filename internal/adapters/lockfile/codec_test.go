package lockfile_test

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pipgen/internal/adapters/lockfile"
	"go.trai.ch/pipgen/internal/core/domain"
)

func sampleLockFile() *domain.LockFile {
	lf := domain.NewLockFile()
	lf.LocalWheelsPackage = "//wheels"
	lf.Environments["linux_py3"] = domain.Environment{
		SysPlatform:   "linux",
		PythonVersion: 3,
		Requirements: map[string]domain.Requirement{
			"gamma": {
				Version:      "1.0",
				IsDirect:     true,
				Source:       "gamma_1_0_py3_none_any",
				Dependencies: []string{"delta"},
			},
			"delta": {
				Version: "2.0",
				Source:  "delta_local",
				Extras:  []string{"fast", "fast"},
			},
		},
	}
	lf.Sources["gamma_1_0_py3_none_any"] = domain.Source{
		URL:    "https://files.example/gamma-1.0-py3-none-any.whl",
		SHA256: "abc123",
	}
	lf.Sources["delta_local"] = domain.Source{File: "delta_local.whl"}
	return lf
}

func TestMarshal_Canonical(t *testing.T) {
	data, err := lockfile.Marshal(sampleLockFile())
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "canonical", data)
}

func TestMarshal_RoundTripIsByteIdentical(t *testing.T) {
	first, err := lockfile.Marshal(sampleLockFile())
	require.NoError(t, err)

	loaded, err := lockfile.Unmarshal(first)
	require.NoError(t, err)

	second, err := lockfile.Marshal(loaded)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))

	reloaded, err := lockfile.Unmarshal(second)
	require.NoError(t, err)
	assert.Equal(t, loaded, reloaded)
}

func TestMarshal_StableAcrossMapOrder(t *testing.T) {
	var outputs []string
	for range 20 {
		data, err := lockfile.Marshal(sampleLockFile())
		require.NoError(t, err)
		outputs = append(outputs, string(data))
	}
	for _, out := range outputs[1:] {
		assert.Equal(t, outputs[0], out)
	}
}

func TestMarshal_EmptyLockFile(t *testing.T) {
	data, err := lockfile.Marshal(domain.NewLockFile())
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"environments\": {},\n  \"local_wheels_package\": null,\n  \"sources\": {}\n}\n", string(data))

	lf, err := lockfile.Unmarshal(data)
	require.NoError(t, err)
	assert.Empty(t, lf.Environments)
	assert.Empty(t, lf.Sources)
	assert.Empty(t, lf.LocalWheelsPackage)
}

func TestUnmarshal_Errors(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		errContains []string
	}{
		{
			name:        "invalid json",
			content:     `{"environments": `,
			errContains: []string{domain.ErrLockFileParse.Error()},
		},
		{
			name: "missing version",
			content: `{"environments": {"linux_py3": {"python_version": 3, "sys_platform": "linux",
				"requirements": {"gamma": {"is_direct": true, "source": "s"}}}},
				"sources": {"s": {"url": "https://x/s.whl"}}}`,
			errContains: []string{domain.ErrLockFileParse.Error(), domain.ErrMissingField.Error()},
		},
		{
			name: "missing is_direct",
			content: `{"environments": {"linux_py3": {"python_version": 3, "sys_platform": "linux",
				"requirements": {"gamma": {"version": "1.0", "source": "s"}}}},
				"sources": {"s": {"url": "https://x/s.whl"}}}`,
			errContains: []string{domain.ErrMissingField.Error()},
		},
		{
			name: "wrong field type",
			content: `{"environments": {"linux_py3": {"python_version": "3", "sys_platform": "linux",
				"requirements": {}}}, "sources": {}}`,
			errContains: []string{domain.ErrLockFileParse.Error()},
		},
		{
			name: "unsupported python version",
			content: `{"environments": {"linux_py4": {"python_version": 4, "sys_platform": "linux",
				"requirements": {}}}, "sources": {}}`,
			errContains: []string{domain.ErrInvalidPythonVersion.Error()},
		},
		{
			name: "unknown source",
			content: `{"environments": {"linux_py3": {"python_version": 3, "sys_platform": "linux",
				"requirements": {"gamma": {"version": "1.0", "is_direct": true, "source": "missing"}}}},
				"sources": {}}`,
			errContains: []string{domain.ErrUnknownSource.Error()},
		},
		{
			name:        "trailing content",
			content:     `{"environments": {}, "local_wheels_package": null, "sources": {}} {"garbage": true`,
			errContains: []string{domain.ErrLockFileParse.Error()},
		},
		{
			name:        "second document",
			content:     `{"environments": {}, "sources": {}}` + "\n" + `{"environments": {}, "sources": {}}`,
			errContains: []string{domain.ErrLockFileParse.Error()},
		},
		{
			name:        "unknown field",
			content:     `{"environments": {}, "sources": {}, "wheels": "x"}`,
			errContains: []string{domain.ErrLockFileParse.Error()},
		},
		{
			name: "environment name mismatch",
			content: `{"environments": {"osx_py3": {"python_version": 3, "sys_platform": "linux",
				"requirements": {}}}, "sources": {}}`,
			errContains: []string{domain.ErrEnvironmentNameMismatch.Error()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lf, err := lockfile.Unmarshal([]byte(tt.content))
			require.Error(t, err)
			assert.Nil(t, lf)
			for _, want := range tt.errContains {
				assert.ErrorContains(t, err, want)
			}
		})
	}
}
