package schedule

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"confview/internal/model"
)

// DecodeError identifies the first structurally invalid record in a
// feed batch. Decoding is all-or-nothing: one bad record fails the
// whole batch rather than silently dropping the record.
type DecodeError struct {
	// Index is the position of the bad record in the feed array.
	Index int
	// Field is the name of the missing or invalid field.
	Field string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("schedule: record %d: missing required field %q", e.Index, e.Field)
}

// talkDTO mirrors the wire shape of one feed record. Pointer fields
// distinguish "absent" from a zero value so required-field checks can
// tell the difference.
type talkDTO struct {
	ID        *int          `json:"id"`
	Title     *string       `json:"title"`
	Body      *string       `json:"body"`
	Tags      *string       `json:"tags"`
	Level     *string       `json:"level"`
	StartsAt  *string       `json:"starts_at"`
	EndsAt    *string       `json:"ends_at"`
	CreatedAt *string       `json:"created_at"`
	UpdatedAt *string       `json:"updated_at"`
	Room      *string       `json:"room"`
	URL       *string       `json:"url"`
	Presenter *presenterDTO `json:"presenter"`
}

// presenterDTO is the wire shape of the embedded presenter object.
// Bio tolerates all three encodings the feed has used over time:
// absent, explicit null, and a string. All but the string normalize
// to nil.
type presenterDTO struct {
	Name *string `json:"name"`
	Bio  *string `json:"bio"`
}

// DecodeTalks decodes a raw JSON feed body into talk records.
//
//   - Input array order is preserved; no sorting is performed.
//   - Every field except starts_at, ends_at, and presenter.bio is
//     required; the first record missing one fails the batch with a
//     *DecodeError naming the record index and field.
//   - starts_at / ends_at are tolerant: absent, null, or unparseable
//     values become nil instead of failing the decode.
func DecodeTalks(data []byte) ([]model.Talk, error) {
	var raw []talkDTO
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("schedule: malformed feed: %w", err)
	}

	talks := make([]model.Talk, 0, len(raw))
	for i, dto := range raw {
		talk, err := decodeTalk(i, dto)
		if err != nil {
			return nil, err
		}
		talks = append(talks, talk)
	}
	return talks, nil
}

func decodeTalk(index int, dto talkDTO) (model.Talk, error) {
	var out model.Talk

	required := []struct {
		field string
		value *string
	}{
		{"title", dto.Title},
		{"body", dto.Body},
		{"tags", dto.Tags},
		{"level", dto.Level},
		{"created_at", dto.CreatedAt},
		{"updated_at", dto.UpdatedAt},
		{"room", dto.Room},
		{"url", dto.URL},
	}

	if dto.ID == nil {
		return out, &DecodeError{Index: index, Field: "id"}
	}
	for _, req := range required {
		if req.value == nil {
			return out, &DecodeError{Index: index, Field: req.field}
		}
	}
	if dto.Presenter == nil {
		return out, &DecodeError{Index: index, Field: "presenter"}
	}
	if dto.Presenter.Name == nil {
		return out, &DecodeError{Index: index, Field: "presenter.name"}
	}

	out = model.Talk{
		ID:        *dto.ID,
		Title:     *dto.Title,
		Body:      *dto.Body,
		Level:     *dto.Level,
		Room:      *dto.Room,
		URL:       *dto.URL,
		Tags:      SplitTags(*dto.Tags),
		StartsAt:  parseInstant(dto.StartsAt),
		EndsAt:    parseInstant(dto.EndsAt),
		CreatedAt: *dto.CreatedAt,
		UpdatedAt: *dto.UpdatedAt,
		Presenter: model.Presenter{
			Name: *dto.Presenter.Name,
			Bio:  dto.Presenter.Bio,
		},
	}
	return out, nil
}

// SplitTags turns the feed's comma-joined tags string into the token
// sequence the rest of the program works with: split on ",", trim each
// piece, drop empty pieces, keep order and duplicates. A string with
// no comma yields a single-element list.
func SplitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tags = append(tags, part)
	}
	return tags
}

// parseInstant parses an optional ISO-8601 timestamp. Absent, null,
// empty, and unparseable values all normalize to nil; this is the one
// place the decoder is tolerant instead of strict.
func parseInstant(v *string) *time.Time {
	if v == nil || *v == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, *v); err == nil {
			return &t
		}
	}
	return nil
}
