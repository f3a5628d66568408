package forms

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avery/copydesk/internal/catalog"
)

func productTemplate(t *testing.T) *catalog.Template {
	t.Helper()
	tpl := catalog.Get("product-description")
	require.NotNil(t, tpl)
	return tpl
}

func validProductData() FormData {
	return FormData{
		"productName":     "Trailhead Pack",
		"productFeatures": "Waterproof, 40L, lifetime warranty",
		"targetCustomer":  "Weekend hikers",
		"tone":            "Professional",
	}
}

func TestValidate(t *testing.T) {
	tpl := productTemplate(t)

	tests := []struct {
		name       string
		mutate     func(FormData)
		wantErrOn  string
		wantErrMsg string
	}{
		{
			name:   "valid form",
			mutate: func(FormData) {},
		},
		{
			name:      "missing required field",
			mutate:    func(d FormData) { delete(d, "productName") },
			wantErrOn: "productName",
		},
		{
			name:      "whitespace-only required field",
			mutate:    func(d FormData) { d["productFeatures"] = "   \t\n" },
			wantErrOn: "productFeatures",
		},
		{
			name:   "optional field may be absent",
			mutate: func(d FormData) { delete(d, "targetCustomer") },
		},
		{
			name:   "value at max length passes",
			mutate: func(d FormData) { d["productName"] = strings.Repeat("a", 120) },
		},
		{
			name:       "value over max length fails",
			mutate:     func(d FormData) { d["productName"] = strings.Repeat("a", 121) },
			wantErrOn:  "productName",
			wantErrMsg: "120 characters or fewer",
		},
		{
			name: "multibyte value at max character count passes",
			// 120 runes but 240 bytes; the cap counts characters.
			mutate: func(d FormData) { d["productName"] = strings.Repeat("é", 120) },
		},
		{
			name:       "multibyte value over max character count fails",
			mutate:     func(d FormData) { d["productName"] = strings.Repeat("é", 121) },
			wantErrOn:  "productName",
			wantErrMsg: "120 characters or fewer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := validProductData()
			tt.mutate(data)

			errs := Validate(tpl, data)
			if tt.wantErrOn == "" {
				assert.True(t, errs.Valid(), "unexpected errors: %v", errs)
				return
			}
			require.False(t, errs.Valid())
			require.Contains(t, errs, tt.wantErrOn)
			if tt.wantErrMsg != "" {
				assert.Contains(t, errs[tt.wantErrOn], tt.wantErrMsg)
			}
		})
	}
}

func TestValidateOtherCompanion(t *testing.T) {
	tpl := productTemplate(t)

	t.Run("other without companion fails", func(t *testing.T) {
		data := validProductData()
		data["tone"] = catalog.OtherSentinel

		errs := Validate(tpl, data)
		require.False(t, errs.Valid())
		assert.Contains(t, errs, "tone_other")
	})

	t.Run("other with companion passes", func(t *testing.T) {
		data := validProductData()
		data["tone"] = catalog.OtherSentinel
		data["tone_other"] = "Gritty"

		errs := Validate(tpl, data)
		assert.True(t, errs.Valid(), "unexpected errors: %v", errs)
	})

	t.Run("companion at cap passes", func(t *testing.T) {
		data := validProductData()
		data["tone"] = catalog.OtherSentinel
		data["tone_other"] = strings.Repeat("x", catalog.OtherMaxLength)

		errs := Validate(tpl, data)
		assert.True(t, errs.Valid(), "unexpected errors: %v", errs)
	})

	t.Run("multibyte companion at cap passes", func(t *testing.T) {
		data := validProductData()
		data["tone"] = catalog.OtherSentinel
		data["tone_other"] = strings.Repeat("ü", catalog.OtherMaxLength)

		errs := Validate(tpl, data)
		assert.True(t, errs.Valid(), "unexpected errors: %v", errs)
	})

	t.Run("companion over cap fails", func(t *testing.T) {
		data := validProductData()
		data["tone"] = catalog.OtherSentinel
		data["tone_other"] = strings.Repeat("x", catalog.OtherMaxLength+1)

		errs := Validate(tpl, data)
		require.False(t, errs.Valid())
		assert.Contains(t, errs, "tone_other")
	})
}

func TestValidateStep(t *testing.T) {
	tpl := catalog.Get("brand-messaging")
	require.NotNil(t, tpl)

	// Only step 0 fields are checked; step 1 fields may be absent.
	data := FormData{
		"brandName":       "Acme",
		"industry":        "B2B SaaS",
		"primaryAudience": "Engineering leaders",
	}

	errs, err := ValidateStep(tpl, 0, data)
	require.NoError(t, err)
	assert.True(t, errs.Valid(), "unexpected errors: %v", errs)

	errs, err = ValidateStep(tpl, 1, data)
	require.NoError(t, err)
	assert.False(t, errs.Valid())
	assert.Contains(t, errs, "keyProblem")

	_, err = ValidateStep(tpl, 5, data)
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	tpl := productTemplate(t)

	t.Run("other sentinel replaced by companion", func(t *testing.T) {
		data := validProductData()
		data["tone"] = catalog.OtherSentinel
		data["tone_other"] = "Gritty"

		resolved := Resolve(tpl, data)
		assert.Equal(t, "Gritty", resolved["tone"])
		assert.NotContains(t, resolved, "tone_other")
	})

	t.Run("plain values untouched", func(t *testing.T) {
		data := validProductData()
		resolved := Resolve(tpl, data)
		assert.Equal(t, "Professional", resolved["tone"])
		assert.Equal(t, "Trailhead Pack", resolved["productName"])
	})

	t.Run("input map not mutated", func(t *testing.T) {
		data := validProductData()
		data["tone"] = catalog.OtherSentinel
		data["tone_other"] = "Gritty"

		_ = Resolve(tpl, data)
		assert.Equal(t, catalog.OtherSentinel, data["tone"])
		assert.Equal(t, "Gritty", data["tone_other"])
	})
}
