package httphandler

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mehtaportfolio/data-backend/internal/domain/model"
)

var validate = validator.New()

var errNotNumbers = &badRequestError{msg: "sr_no, index_no and point_no must be numbers"}

// flexNumber accepts a JSON number or a string holding a number. Any other
// JSON value is rejected with errNotNumbers.
type flexNumber struct {
	value float64
}

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return errNotNumbers
		}
		raw = strings.TrimSpace(s)
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return errNotNumbers
	}
	n.value = f
	return nil
}

// fitsInt64 reports whether the value truncates to a representable int64.
func (n *flexNumber) fitsInt64() bool {
	if n == nil {
		return true
	}
	t := math.Trunc(n.value)
	return t >= math.MinInt64 && t < math.MaxInt64
}

func (n *flexNumber) int64Ptr() *int64 {
	if n == nil {
		return nil
	}
	v := int64(math.Trunc(n.value))
	return &v
}

func (n *flexNumber) float64Ptr() *float64 {
	if n == nil {
		return nil
	}
	v := n.value
	return &v
}

// dummyInput is the request body for dummy-table writes. JSON null counts as
// absent.
type dummyInput struct {
	SrNo    *flexNumber `json:"sr_no" validate:"required"`
	IndexNo *flexNumber `json:"index_no" validate:"required"`
	PointNo *flexNumber `json:"point_no" validate:"required"`
}

func (in dummyInput) toRow() model.DummyRow {
	return model.DummyRow{
		SrNo:    in.SrNo.int64Ptr(),
		IndexNo: in.IndexNo.int64Ptr(),
		PointNo: in.PointNo.float64Ptr(),
	}
}

// parseDummyInput decodes a dummy-table body. A body that is not a JSON
// object is invalid; a field holding anything but a number, a numeric string
// or null, or an integer field outside the int64 range, is errNotNumbers.
func parseDummyInput(body []byte) (dummyInput, error) {
	var in dummyInput
	if err := json.Unmarshal(body, &in); err != nil {
		if errors.Is(err, errNotNumbers) {
			return in, errNotNumbers
		}
		return in, errInvalidBody
	}
	if !in.SrNo.fitsInt64() || !in.IndexNo.fitsInt64() {
		return in, errNotNumbers
	}
	return in, nil
}

// decodeDummyCreate requires all three fields.
func decodeDummyCreate(body []byte) (model.DummyRow, error) {
	in, err := parseDummyInput(body)
	if err != nil {
		return model.DummyRow{}, err
	}

	if err := validate.Struct(in); err != nil {
		return model.DummyRow{}, &badRequestError{msg: "Missing required fields: sr_no, index_no, point_no"}
	}

	return in.toRow(), nil
}

// decodeDummyUpdate converts whichever fields are present.
func decodeDummyUpdate(body []byte) (model.DummyRow, error) {
	in, err := parseDummyInput(body)
	if err != nil {
		return model.DummyRow{}, err
	}
	return in.toRow(), nil
}
