package pdftable

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/domonda/go-pictable"
	"github.com/domonda/go-pictable/fontmetrics"
)

func testPlan(t *testing.T, rawText string, maxRowsPerUnit int) *pictable.LayoutPlan {
	t.Helper()
	fonts, err := fontmetrics.GoRegular()
	require.NoError(t, err)
	table := pictable.BuildTable(rawText, ",", 0)
	plan, err := pictable.NewLayouter(fonts).
		WithMaxRowsPerUnit(maxRowsPerUnit).
		Layout(table, pictable.NewStyleAssigner().Assign(table.NumColumns()))
	require.NoError(t, err)
	return plan
}

func TestRendererRender(t *testing.T) {
	plan := testPlan(t, "Name,Amount\nAlice,12.50\nBob,7.00\nCarol,99.99\nDave,1.00", 2)
	require.Len(t, plan.Units, 2)

	var progress []float64
	artifact, err := NewRenderer().
		WithTitle("Expenses").
		WithAuthor("accounting").
		Render(context.Background(), plan, func(p float64) { progress = append(progress, p) })
	require.NoError(t, err)

	require.Equal(t, pictable.PaginatedDocument, artifact.Target())
	require.NotEmpty(t, artifact.ID())

	document := artifact.(*DocumentArtifact)
	require.Equal(t, len(plan.Units), document.NumPages(), "one page per unit")

	for i := 1; i < len(progress); i++ {
		require.GreaterOrEqual(t, progress[i], progress[i-1], "progress must not decrease")
	}
	require.Equal(t, 1.0, progress[len(progress)-1], "final progress must be exactly 1")
}

func TestDocumentArtifactEncode(t *testing.T) {
	artifact, err := NewRenderer().Render(context.Background(), testPlan(t, "a,b\n1,2", 0), nil)
	require.NoError(t, err)

	data, err := artifact.Encode()
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF-")), "Encode must produce a PDF")

	again, err := artifact.Encode()
	require.NoError(t, err)
	require.Same(t, &data[0], &again[0], "encoding is cached, a document can only be output once")
}

func TestRendererNonASCIIText(t *testing.T) {
	artifact, err := NewRenderer().Render(context.Background(), testPlan(t, "Stück,Preis\nMaß,1€", 0), nil)
	require.NoError(t, err)
	data, err := artifact.Encode()
	require.NoError(t, err)
	require.NotEmpty(t, data)
}

func TestRendererEmptyPlan(t *testing.T) {
	_, err := NewRenderer().Render(context.Background(), &pictable.LayoutPlan{}, nil)
	var renderErr *pictable.RenderError
	require.ErrorAs(t, err, &renderErr)
	require.ErrorIs(t, err, pictable.ErrEmptyData)
}

func TestRendererCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRenderer().Render(ctx, testPlan(t, "a\n1", 0), nil)
	require.Error(t, err)
	var renderErr *pictable.RenderError
	require.ErrorAs(t, err, &renderErr)
	require.Equal(t, pictable.PaginatedDocument, renderErr.Target)
}
