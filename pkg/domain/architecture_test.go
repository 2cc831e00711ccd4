package domain

import (
	"testing"

	"rentledger/testutil"
)

// The domain package is shared by every layer and may only depend on the
// standard library and the decimal type.
func TestDomainImports(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".",
		testutil.AnyOf(testutil.InternalImportForbidden, testutil.ThirdPartyExcept("github.com/shopspring/decimal")),
		"pkg/domain must stay free of internal and third-party dependencies")
}
