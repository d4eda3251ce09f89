package main_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/codec"
	main "github.com/fwojciec/docdex/cmd/docdex"
	"github.com/fwojciec/docdex/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// sampleIndex is the index the CLI tests query against.
func sampleIndex() *docdex.Index {
	return &docdex.Index{
		DocNames:   []string{"index", "pyform.returns"},
		EnvVersion: docdex.DefaultEnvVersion(),
		Filenames:  []string{"index.rst", "pyform.returns.rst"},
		Titles:     []string{"pyform documentation", "pyform.returns module"},
		ObjNames: map[int]docdex.ObjectType{
			0: {Domain: "py", Name: "function", Display: "Python function"},
		},
		ObjTypes: map[int]string{0: "py:function"},
		Objects: map[string]map[string]docdex.ObjectEntry{
			"pyform.returns": {
				"annualized_return": {Doc: 1, TypeCode: 0, Priority: docdex.PriorityDefault},
			},
		},
		Terms: map[string]docdex.DocRefs{
			"annualized_return": {1},
			"documentation":     {0},
			"returns":           {1},
		},
		TitleTerms: map[string]docdex.DocRefs{
			"documentation": {0},
			"pyform":        {0, 1},
			"returns":       {1},
		},
	}
}

// writeIndexFile encodes the sample index into a temp searchindex.js.
func writeIndexFile(t *testing.T, idx *docdex.Index) string {
	t.Helper()
	payload, err := codec.EncodeIndex(codec.Default, idx)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "searchindex.js")
	require.NoError(t, os.WriteFile(path, payload, 0o644))
	return path
}

// storedIndexDeps wires project and index mocks that serve the sample index
// as the latest stored build of project "pyform".
func storedIndexDeps(t *testing.T) (*main.Dependencies, *bytes.Buffer) {
	t.Helper()

	payload, err := codec.EncodeIndex(codec.Default, sampleIndex())
	require.NoError(t, err)

	stdout := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: &bytes.Buffer{},
		Logger: discardLogger(),
		Projects: &mock.ProjectService{
			FindProjectsFn: func(ctx context.Context, filter docdex.ProjectFilter) ([]*docdex.Project, error) {
				if filter.Name != nil && *filter.Name == "pyform" {
					return []*docdex.Project{{ID: "proj-123", Name: "pyform"}}, nil
				}
				return nil, nil
			},
		},
		Indexes: &mock.IndexService{
			FindLatestIndexFn: func(ctx context.Context, projectID string) (*docdex.IndexRecord, error) {
				require.Equal(t, "proj-123", projectID)
				return &docdex.IndexRecord{
					ID:        "idx-1",
					ProjectID: projectID,
					Codec:     codec.Default.Name(),
					Payload:   payload,
				}, nil
			},
		},
	}, stdout
}
