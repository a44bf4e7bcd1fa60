package config

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/launchdarkly/api-contract-tests/framework"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sourceFiles(files map[string]string) fstest.MapFS {
	m := fstest.MapFS{}
	for name, content := range files {
		m[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return m
}

func TestNormalizeEnvironment(t *testing.T) {
	for input, expected := range map[string]string{
		"qa":      "qa",
		"QA":      "qa",
		" qa ":    "qa",
		"\tQa\n":  "qa",
		"":        DefaultEnvironment,
		"   ":     DefaultEnvironment,
		"Staging": "staging",
	} {
		assert.Equal(t, expected, NormalizeEnvironment(input), "input %q", input)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name           string
		files          map[string]string
		environment    string
		expectedSource string
		expectedURI    string
	}{
		{
			name: "environment-specific source wins over default",
			files: map[string]string{
				"config.qa.properties": "BASE_URI=http://qa.example.test\n",
				"config.properties":    "BASE_URI=http://default.example.test\n",
			},
			environment:    "qa",
			expectedSource: "config.qa.properties",
			expectedURI:    "http://qa.example.test",
		},
		{
			name: "falls back to default source",
			files: map[string]string{
				"config.properties": "BASE_URI=http://default.example.test\n",
			},
			environment:    "qa",
			expectedSource: "config.properties",
			expectedURI:    "http://default.example.test",
		},
		{
			name: "environment name is normalized",
			files: map[string]string{
				"config.qa.properties": "BASE_URI=http://qa.example.test\n",
			},
			environment:    " QA ",
			expectedSource: "config.qa.properties",
			expectedURI:    "http://qa.example.test",
		},
		{
			name: "blank environment means dev",
			files: map[string]string{
				"config.dev.properties": "BASE_URI=http://dev.example.test\n",
			},
			environment:    "",
			expectedSource: "config.dev.properties",
			expectedURI:    "http://dev.example.test",
		},
		{
			name: "properties syntax",
			files: map[string]string{
				"config.properties": "# comment\n! other comment\nBASE_URI : http://colon.example.test\nOTHER=${BASE_URI}\n",
			},
			environment:    "dev",
			expectedSource: "config.properties",
			expectedURI:    "http://colon.example.test",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Resolve(sourceFiles(tt.files), tt.environment, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedSource, c.Source())
			v, ok := c.Get(BaseURIKey)
			assert.True(t, ok)
			assert.Equal(t, tt.expectedURI, v)
		})
	}
}

func TestResolveDoesNotExpandReferences(t *testing.T) {
	c, err := Resolve(sourceFiles(map[string]string{
		"config.properties": "A=1\nB=${A}\nC=${UNDEFINED}\n",
	}), "dev", nil)
	require.NoError(t, err)
	b, _ := c.Get("B")
	assert.Equal(t, "${A}", b)
	cv, _ := c.Get("C")
	assert.Equal(t, "${UNDEFINED}", cv)
}

func TestResolveReportsWhichSourceWasUsed(t *testing.T) {
	var logger framework.CapturingLogger
	_, err := Resolve(sourceFiles(map[string]string{
		"config.properties": "BASE_URI=http://default.example.test\n",
	}), "qa", &logger)
	require.NoError(t, err)

	out := logger.Output()
	require.Len(t, out, 2)
	assert.Contains(t, out[0].Message, "config.qa.properties not found")
	assert.Contains(t, out[1].Message, "from config.properties")
}

func TestResolveWithNoSourceFails(t *testing.T) {
	_, err := Resolve(fstest.MapFS{}, "qa", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigurationNotFound))

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, []string{"config.qa.properties", "config.properties"}, nf.Tried)
	assert.Contains(t, err.Error(), "config.qa.properties")
	assert.Contains(t, err.Error(), "config.properties")
}

func TestResolveWithUnreadableSourceFails(t *testing.T) {
	// a directory where a file is expected cannot be read
	source := fstest.MapFS{
		"config.qa.properties/nested": &fstest.MapFile{Data: []byte("x")},
	}
	_, err := Resolve(source, "qa", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigurationLoad))
	assert.False(t, errors.Is(err, ErrConfigurationNotFound))
}

func TestGetMissingKey(t *testing.T) {
	c := NewConfiguration("dev", map[string]string{"A": "1"})
	_, ok := c.Get("B")
	assert.False(t, ok)
}

func TestRequire(t *testing.T) {
	c := NewConfiguration("dev", map[string]string{"A": "1", "BLANK": "  "})

	v, err := c.Require("A")
	require.NoError(t, err)
	assert.Equal(t, "1", v)

	for _, key := range []string{"BLANK", "ABSENT"} {
		_, err := c.Require(key)
		assert.True(t, errors.Is(err, ErrMissingKey), key)
		assert.Contains(t, err.Error(), key)
	}
}

func TestNewConfigurationCopiesValues(t *testing.T) {
	values := map[string]string{"A": "1"}
	c := NewConfiguration("QA", values)
	values["A"] = "2"
	v, _ := c.Get("A")
	assert.Equal(t, "1", v)
	assert.Equal(t, "qa", c.Environment())
}

func TestKeysAreSorted(t *testing.T) {
	c := NewConfiguration("dev", map[string]string{"B": "", "A": "", "C": ""})
	assert.Equal(t, []string{"A", "B", "C"}, c.Keys())
}

func TestSourceNameForEnvironment(t *testing.T) {
	assert.Equal(t, "config.qa.properties", SourceNameForEnvironment(" QA"))
	assert.Equal(t, "config.dev.properties", SourceNameForEnvironment(""))
}
