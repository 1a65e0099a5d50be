// api/model/enums_test.go
package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cobaltsec/aegis/api/model"
)

func TestActionWriteClassification(t *testing.T) {
	assert.False(t, model.ActionView.IsWrite())
	assert.False(t, model.ActionUse.IsWrite())

	for _, a := range []model.Action{
		model.ActionCreate, model.ActionEdit, model.ActionDelete,
		model.ActionApprove, model.ActionConfigure, model.ActionManageAll,
	} {
		assert.True(t, a.IsWrite(), "%s should be write-class", a)
	}

	assert.Equal(t, model.OpRead, model.ActionView.Operation())
	assert.Equal(t, model.OpWrite, model.ActionDelete.Operation())
}

func TestEnumValidation(t *testing.T) {
	assert.True(t, model.ModuleFinanceEstimation.Valid())
	assert.False(t, model.Module("accounting").Valid())

	assert.True(t, model.ActionManageAll.Valid())
	assert.False(t, model.Action("transmogrify").Valid())

	assert.True(t, model.OpRead.Valid())
	assert.False(t, model.Operation("append").Valid())
}

func TestTierOrderingAndSensitivity(t *testing.T) {
	assert.True(t, model.TierCritical.AtLeast(model.TierRestricted))
	assert.False(t, model.TierInternal.AtLeast(model.TierRestricted))

	assert.True(t, model.TierRestricted.Sensitive())
	assert.True(t, model.TierCritical.Sensitive())
	assert.False(t, model.TierPublic.Sensitive())
	assert.False(t, model.TierInternal.Sensitive())

	assert.True(t, model.Tier("RESTRICTED").Valid())
	assert.False(t, model.Tier("TOP_SECRET").Valid())
}

func TestReferenceRendering(t *testing.T) {
	assert.Equal(t, "finance_estimation.view", model.PermissionRef(model.ModuleFinanceEstimation, model.ActionView))
	assert.Equal(t, "invoice:inv-1", model.ObjectRef("invoice", "inv-1"))
}
