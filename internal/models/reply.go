package models

import "encoding/json"

// Reply is the parsed body of a successful chat response
type Reply struct {
	Content string
	Context json.RawMessage // opaque, nil when the backend sent none
}

// ReplyContext is the shape the backend currently uses for the reply context.
// The controller never looks inside it; views decode it to show citations.
type ReplyContext struct {
	Products           []ProductRef `json:"products"`
	InstallationGuides []GuideRef   `json:"installation_guides"`
}

// ProductRef is a product cited by a reply
type ProductRef struct {
	Name       string `json:"name"`
	PartNumber string `json:"part_number"`
}

// GuideRef is an installation guide cited by a reply
type GuideRef struct {
	Content    string `json:"content"`
	PartNumber string `json:"part_number,omitempty"`
}

// DecodeReplyContext decodes raw reply context. Unknown or malformed context
// yields an empty ReplyContext and false.
func DecodeReplyContext(raw json.RawMessage) (ReplyContext, bool) {
	var rc ReplyContext
	if len(raw) == 0 {
		return rc, false
	}
	if err := json.Unmarshal(raw, &rc); err != nil {
		return ReplyContext{}, false
	}
	return rc, len(rc.Products) > 0 || len(rc.InstallationGuides) > 0
}
