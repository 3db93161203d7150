package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportReviewedBody(t *testing.T) {
	body, err := ReportReviewedBody("Ana", "Beach Lovers", "resolved")
	require.NoError(t, err)

	assert.Contains(t, body, "Ana")
	assert.Contains(t, body, "Beach Lovers")
	assert.Contains(t, body, "resolved")
}

func TestReportReviewedBodyEscapesHTML(t *testing.T) {
	body, err := ReportReviewedBody("Ana", "<script>x</script>", "dismissed")
	require.NoError(t, err)

	assert.NotContains(t, body, "<script>")
}
