package paraglide_test

import (
	"testing"

	"github.com/sheikhomar/paraglide"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatuteQuery_RetrieverQuery(t *testing.T) {
	t.Parallel()

	t.Run("question only", func(t *testing.T) {
		t.Parallel()
		q := &paraglide.StatuteQuery{Question: "Hvor mange ugers barsel har jeg ret til?"}
		assert.Equal(t, "Mit spørgsmål er:\nHvor mange ugers barsel har jeg ret til?", q.RetrieverQuery())
	})

	t.Run("situational context is prefixed in sorted key order", func(t *testing.T) {
		t.Parallel()
		q := &paraglide.StatuteQuery{
			Question: "Kan jeg få barselsdagpenge?",
			SituationalContext: map[string]string{
				"arbejdstimer":   "37 timer om ugen",
				"arbejdsforhold": "lønmodtager",
			},
		}
		want := "Min nuværende situtation er:\n" +
			" - arbejdsforhold: lønmodtager\n" +
			" - arbejdstimer: 37 timer om ugen\n" +
			"\n" +
			"Mit spørgsmål er:\nKan jeg få barselsdagpenge?"
		assert.Equal(t, want, q.RetrieverQuery())
	})
}

func TestStatuteQuery_Validate(t *testing.T) {
	t.Parallel()

	err := (&paraglide.StatuteQuery{Question: "   "}).Validate()
	require.Error(t, err)
	assert.Equal(t, paraglide.EINVALID, paraglide.ErrorCode(err))

	require.NoError(t, (&paraglide.StatuteQuery{Question: "Kan jeg få barselsdagpenge?"}).Validate())
}
