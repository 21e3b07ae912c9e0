package request

import "encoding/json"

type CreateReviewRequest struct {
	CustomerID int64   `json:"customer_id" validate:"required,gt=0"`
	ItemID     int64   `json:"item_id" validate:"required,gt=0"`
	Comment    *string `json:"comment,omitempty" validate:"omitempty,max=1000"`
}

// UpdateReviewRequest only touches the comment; a review never moves to
// another customer or item. An absent comment leaves the review unchanged,
// an explicit null clears it.
type UpdateReviewRequest struct {
	Comment *string `json:"comment" validate:"omitempty,max=1000"`

	commentSet bool
}

func (r *UpdateReviewRequest) UnmarshalJSON(data []byte) error {
	type plain UpdateReviewRequest
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*r = UpdateReviewRequest(p)
	_, r.commentSet = fields["comment"]
	return nil
}

// ClearComment asks for the comment to be removed.
func (r *UpdateReviewRequest) ClearComment() *UpdateReviewRequest {
	r.Comment = nil
	r.commentSet = true
	return r
}

// HasComment reports whether the request carries a comment change,
// including an explicit null.
func (r UpdateReviewRequest) HasComment() bool {
	return r.commentSet || r.Comment != nil
}
