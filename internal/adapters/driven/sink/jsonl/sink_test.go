package jsonl

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bodacc/internal/core/domain"
)

func TestSink_Write(t *testing.T) {
	var buf bytes.Buffer
	sink := New(&buf)

	for _, uid := range []string{"A1", "A2"} {
		err := sink.Write(context.Background(), &domain.Emission{
			Record: &domain.Record{UID: uid},
			Line:   []byte(`{"uid":"` + uid + `"}`),
		})
		require.NoError(t, err)
	}

	assert.Equal(t, "{\"uid\":\"A1\"}\n{\"uid\":\"A2\"}\n", buf.String())
	assert.Equal(t, "jsonl", sink.Name())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestSink_WriteError(t *testing.T) {
	sink := New(failingWriter{})

	err := sink.Write(context.Background(), &domain.Emission{
		Record: &domain.Record{UID: "A1"},
		Line:   []byte(`{}`),
	})
	assert.ErrorContains(t, err, "closed pipe")
}
