package document

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/types/common"
)

func TestParseType(t *testing.T) {
	assert.Equal(t, TypePurchaseAgreement, ParseType("purchase_agreement"))
	assert.Equal(t, TypeEnergyLabel, ParseType("energy_label"))
	assert.Equal(t, TypeOther, ParseType("other"))

	// Unknown labels never fail a run.
	assert.Equal(t, TypeOther, ParseType("mortgage_deed"))
	assert.Equal(t, TypeOther, ParseType(""))
}

func TestObjectPath(t *testing.T) {
	sessionID := common.ID("11111111-1111-1111-1111-111111111111")
	docID := common.ID("22222222-2222-2222-2222-222222222222")

	path := ObjectPath(sessionID, docID, "koopakte 2024.pdf")
	assert.Equal(t,
		"sessions/11111111-1111-1111-1111-111111111111/22222222-2222-2222-2222-222222222222_koopakte 2024.pdf",
		path)

	assert.Equal(t, "sessions/11111111-1111-1111-1111-111111111111/", SessionPrefix(sessionID))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "a_b_c.pdf", sanitizeFilename("a/b\\c.pdf"))
	assert.Equal(t, "report_.pdf", sanitizeFilename("report\x00.pdf"))
	assert.Equal(t, "document", sanitizeFilename(""))
}
