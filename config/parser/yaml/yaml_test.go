package yaml

import (
	"testing"

	"github.com/0xalexb/ciconfig-inspect/config"
	"github.com/0xalexb/ciconfig-inspect/document"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse_EmptyPath_KeepsOrder(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	data := []byte(`
variables:
  GO_VERSION: "1.25"
stages:
  - build
  - test
build:
  stage: build
  script: go build ./...
`)

	var result any

	err := parser.Parse(data, &result, "")

	require.NoError(t, err)

	mapping, ok := result.(*document.Mapping)
	require.True(t, ok, "expected *document.Mapping, got %T", result)
	assert.Equal(t, []string{"variables", "stages", "build"}, mapping.Keys())

	build, ok := mapping.Get("build")
	require.True(t, ok)
	assert.Equal(t, "{stage: build, script: go build ./...}", build.String())
}

func TestParser_Parse_Struct(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	data := []byte(`
image: golang:1.25
stages: [build, test]
`)

	var result struct {
		Image  string   `yaml:"image"`
		Stages []string `yaml:"stages"`
	}

	err := parser.Parse(data, &result, "")

	require.NoError(t, err)
	assert.Equal(t, "golang:1.25", result.Image)
	assert.Equal(t, []string{"build", "test"}, result.Stages)
}

func TestParser_Parse_SingleLevelPath(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	data := []byte(`
build:
  stage: build
  retry: 2
test:
  stage: test
`)

	var result struct {
		Stage string `yaml:"stage"`
		Retry int    `yaml:"retry"`
	}

	err := parser.Parse(data, &result, "build")

	require.NoError(t, err)
	assert.Equal(t, "build", result.Stage)
	assert.Equal(t, 2, result.Retry)
}

func TestParser_Parse_MultiLevelPath(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	data := []byte(`
deploy:
  environment:
    name: production
    url: https://example.com
`)

	var result any

	err := parser.Parse(data, &result, "deploy:environment")

	require.NoError(t, err)
	assert.Equal(t, "{name: production, url: https://example.com}", result.(document.Value).String())
}

func TestParser_Parse_LiteralKeys(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	data := []byte(`
.base:
  image: alpine
job.one:
  stage: a
job:
  one:
    stage: b
`)

	testCases := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "hidden job", path: ".base", expected: "{image: alpine}"},
		{name: "hidden job field", path: ".base:image", expected: "alpine"},
		{name: "dotted key", path: "job.one", expected: "{stage: a}"},
		{name: "nested key", path: "job:one", expected: "{stage: b}"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var result any

			err := parser.Parse(data, &result, testCase.path)
			require.NoError(t, err)

			value, ok := result.(document.Value)
			require.True(t, ok, "expected document.Value, got %T", result)
			assert.Equal(t, testCase.expected, value.String())
		})
	}

	var image string

	err := parser.Parse(data, &image, ".base:image")
	require.NoError(t, err)
	assert.Equal(t, "alpine", image)
}

func TestParser_Parse_MergeKeys(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	testCases := []struct {
		name     string
		data     string
		expected string
	}{
		{
			name:     "override after merge",
			data:     ".defaults: &d\n  image: alpine\n  tags: [docker]\nbuild:\n  <<: *d\n  image: golang\n",
			expected: "{image: golang, tags: [docker]}",
		},
		{
			name:     "explicit key before merge",
			data:     ".defaults: &d\n  image: alpine\n  tags: [docker]\nbuild:\n  image: golang\n  <<: *d\n",
			expected: "{image: golang, tags: [docker]}",
		},
		{
			name:     "sequence of merges",
			data:     ".a: &a {stage: a, image: one}\n.b: &b {stage: b, when: manual}\nbuild:\n  <<: [*a, *b]\n",
			expected: "{stage: a, image: one, when: manual}",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var result any

			err := parser.Parse([]byte(testCase.data), &result, "build")

			require.NoError(t, err)
			assert.Equal(t, testCase.expected, result.(document.Value).String())
		})
	}
}

func TestParser_Parse_ConversionErrors(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	testCases := []struct {
		name    string
		data    string
		wantErr error
	}{
		{name: "scalar merge", data: "job:\n  <<: nope\n", wantErr: config.ErrParse},
		{name: "duplicate key", data: "image: a\nimage: b\n", wantErr: config.ErrParse},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var result any

			err := parser.Parse([]byte(testCase.data), &result, "")

			require.ErrorIs(t, err, testCase.wantErr)
		})
	}
}

func TestParser_Parse_NonExistentKey(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	data := []byte(`
build:
  stage: build
`)

	var result any

	err := parser.Parse(data, &result, "nonexistent")

	require.ErrorIs(t, err, config.ErrPathNotFound)
	assert.Contains(t, err.Error(), "not found")
}

func TestParser_Parse_NonMappingIntermediate(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	data := []byte(`
build: "just a string"
`)

	var result any

	err := parser.Parse(data, &result, "build:nested")

	require.Error(t, err)
}

func TestParser_Parse_ArrayValue(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	data := []byte(`
build:
  script:
    - go vet ./...
    - go build ./...
`)

	var result []string

	err := parser.Parse(data, &result, "build:script")

	require.NoError(t, err)
	assert.Equal(t, []string{"go vet ./...", "go build ./..."}, result)
}

func TestParser_Parse_TopLevelSequence(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	var result any

	err := parser.Parse([]byte("- 1\n- 2\n"), &result, "")

	require.NoError(t, err)
	assert.Equal(t, document.Sequence{document.Int(1), document.Int(2)}, result)
}

func TestParser_Parse_EmptyData(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	var result any

	err := parser.Parse([]byte{}, &result, "")

	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestParser_Parse_EmptyDataWithPath(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	var result any

	err := parser.Parse([]byte{}, &result, "build")

	require.ErrorIs(t, err, config.ErrPathNotFound)
}

func TestParser_Parse_InvalidYAML(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	data := []byte(`
invalid: yaml: content: [
`)

	var result any

	err := parser.Parse(data, &result, "")

	require.ErrorIs(t, err, config.ErrParse)
}

func TestParser_Parse_MultipleDocuments(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	for _, data := range []string{
		"stages: [build]\n---\nstages: [test]\n",
		"stages: [build]\n---\n",
		"stages: [build]\n--- ~\n",
	} {
		var result any

		err := parser.Parse([]byte(data), &result, "")

		require.ErrorIs(t, err, config.ErrMultipleDocuments, "input %q", data)
	}
}

func TestParser_Parse_LeadingDocumentMarker(t *testing.T) {
	t.Parallel()

	var result any

	err := NewParser().Parse([]byte("---\nstages: [build]\n"), &result, "")

	require.NoError(t, err)
	assert.Equal(t, "{stages: [build]}", result.(document.Value).String())
}

func TestParser_Parse_Aliases(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	data := []byte(`
image: &image golang:1.25
build:
  image: *image
`)

	var result struct {
		Build struct {
			Image string `yaml:"image"`
		} `yaml:"build"`
	}

	err := parser.Parse(data, &result, "")

	require.NoError(t, err)
	assert.Equal(t, "golang:1.25", result.Build.Image)
}

func TestSplitPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "single key",
			input:    "build",
			expected: []string{"build"},
		},
		{
			name:     "two level path",
			input:    "build:variables",
			expected: []string{"build", "variables"},
		},
		{
			name:     "dots stay in the key",
			input:    ".base:job.one",
			expected: []string{".base", "job.one"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := splitPath(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParser_Parse_Scalars(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	data := []byte(`
build:
  interruptible: true
  allow_failure: false
  ratio: 3.14159
`)

	var interruptible bool

	err := parser.Parse(data, &interruptible, "build:interruptible")
	require.NoError(t, err)
	assert.True(t, interruptible)

	var allowFailure bool

	err = parser.Parse(data, &allowFailure, "build:allow_failure")
	require.NoError(t, err)
	assert.False(t, allowFailure)

	var ratio float64

	err = parser.Parse(data, &ratio, "build:ratio")
	require.NoError(t, err)
	assert.InDelta(t, 3.14159, ratio, 0.00001)
}
