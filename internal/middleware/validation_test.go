package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type childRequest struct {
	ChildName string   `json:"childName" validate:"required"`
	Age       int      `json:"age" validate:"gte=1,lte=18"`
	Grade     int      `json:"grade" validate:"gte=1,lte=12"`
	Interests []string `json:"interests" validate:"interests"`
}

type catalogRequest struct {
	Name      string `json:"name" validate:"required"`
	Interests string `json:"interests" validate:"interests"`
}

var reflectString = reflect.TypeOf("")

func jsonRequest(t *testing.T, body interface{}) *http.Request {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/api/profiles", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestProperty_AgeRangeValidation(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("ages outside 1..18 are rejected", prop.ForAll(
		func(age int) bool {
			var body childRequest
			err := DecodeAndValidate(jsonRequest(t, map[string]interface{}{
				"childName": "Asha",
				"age":       age,
				"grade":     4,
				"interests": []string{"Math"},
			}), &body)

			if age >= 1 && age <= 18 {
				return err == nil
			}
			return err != nil
		},
		gen.IntRange(-10, 30),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_BlankInterestListsAreRejected(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("a list of only blank tags fails the interests rule", prop.ForAll(
		func(blanks []string) bool {
			var body childRequest
			err := DecodeAndValidate(jsonRequest(t, map[string]interface{}{
				"childName": "Asha",
				"age":       9,
				"grade":     4,
				"interests": blanks,
			}), &body)

			errs := FormatValidationErrors(err)
			return len(errs) == 1 && errs[0].Field == "interests"
		},
		gen.SliceOf(gen.OneConstOf("", " ", "\t", "  "), reflectString),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestValidateInterests_CommaJoinedString(t *testing.T) {
	assert.NoError(t, ValidateRequest(&catalogRequest{Name: "Kit", Interests: "Science, Math"}))
	assert.Error(t, ValidateRequest(&catalogRequest{Name: "Kit", Interests: " , ,"}))
	assert.Error(t, ValidateRequest(&catalogRequest{Name: "Kit", Interests: ""}))
}

func TestFormatValidationErrors_UsesJSONFieldNames(t *testing.T) {
	var body childRequest
	err := DecodeAndValidate(jsonRequest(t, map[string]interface{}{
		"age":       9,
		"grade":     13,
		"interests": []string{"Art"},
	}), &body)
	require.Error(t, err)

	fields := map[string]string{}
	for _, ve := range FormatValidationErrors(err) {
		fields[ve.Field] = ve.Message
	}

	assert.Equal(t, "This field is required", fields["childName"])
	assert.Equal(t, "Value must be less than or equal to 12", fields["grade"])
	assert.NotContains(t, fields, "ChildName")
}

func TestRespondWithDecodeError(t *testing.T) {
	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/profiles", strings.NewReader("{not json"))
		var body childRequest
		err := DecodeAndValidate(req, &body)
		require.Error(t, err)

		w := httptest.NewRecorder()
		RespondWithDecodeError(w, err)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid request body", decodeError(t, w).Error.Message)
	})

	t.Run("failed rules", func(t *testing.T) {
		var body childRequest
		err := DecodeAndValidate(jsonRequest(t, map[string]interface{}{"childName": "Asha"}), &body)
		require.Error(t, err)

		w := httptest.NewRecorder()
		RespondWithDecodeError(w, err)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		response := decodeError(t, w)
		assert.Equal(t, "validation failed", response.Error.Message)
		assert.Contains(t, response.Error.Details, "validation_errors")
	})
}
