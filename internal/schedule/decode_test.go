package schedule

import (
	"errors"
	"reflect"
	"testing"
)

const validRecord = `{
	"id": 1,
	"title": "Taming the Cascade",
	"body": "How specificity actually works.",
	"tags": "css, specificity",
	"level": "beginner",
	"starts_at": "2016-06-21T14:05:00Z",
	"ends_at": "2016-06-21T14:35:00Z",
	"created_at": "2016-01-10T09:00:00Z",
	"updated_at": "2016-02-01T09:00:00Z",
	"room": "Main Hall",
	"url": "https://example.com/talks/1",
	"presenter": {"name": "Avery Quinn", "bio": "Works on style engines."}
}`

func TestDecodeTalksValidRecord(t *testing.T) {
	talks, err := DecodeTalks([]byte("[" + validRecord + "]"))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(talks) != 1 {
		t.Fatalf("expected 1 talk, got %d", len(talks))
	}

	talk := talks[0]
	if talk.ID != 1 {
		t.Errorf("expected ID 1, got %d", talk.ID)
	}
	if talk.Title != "Taming the Cascade" {
		t.Errorf("unexpected title %q", talk.Title)
	}
	if !reflect.DeepEqual(talk.Tags, []string{"css", "specificity"}) {
		t.Errorf("unexpected tags %v", talk.Tags)
	}
	if talk.StartsAt == nil || talk.EndsAt == nil {
		t.Fatal("expected both timestamps to parse")
	}
	if talk.Presenter.Name != "Avery Quinn" {
		t.Errorf("unexpected presenter %q", talk.Presenter.Name)
	}
	if talk.Presenter.Bio == nil || *talk.Presenter.Bio != "Works on style engines." {
		t.Errorf("unexpected bio %v", talk.Presenter.Bio)
	}
}

func TestSplitTags(t *testing.T) {
	cases := []struct {
		raw  string
		want []string
	}{
		{"a, b ,c,,d", []string{"a", "b", "c", "d"}},
		{"go", []string{"go"}},
		{"go,go", []string{"go", "go"}}, // duplicates preserved
		{"", []string{}},
		{" , , ", []string{}},
		{"  css  ,  layout  ", []string{"css", "layout"}},
	}

	for _, c := range cases {
		got := SplitTags(c.raw)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("SplitTags(%q) = %v, want %v", c.raw, got, c.want)
		}
	}
}

func TestDecodeMissingRequiredFieldFailsBatch(t *testing.T) {
	// Second record has no tags field: the whole batch must fail,
	// not just drop that record.
	feed := `[` + validRecord + `, {
		"id": 2,
		"title": "Untagged",
		"body": "b",
		"level": "advanced",
		"created_at": "x", "updated_at": "x",
		"room": "r", "url": "u",
		"presenter": {"name": "n"}
	}]`

	talks, err := DecodeTalks([]byte(feed))
	if err == nil {
		t.Fatal("expected decode failure for missing tags")
	}
	if talks != nil {
		t.Errorf("expected no talks on batch failure, got %d", len(talks))
	}

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected *DecodeError, got %T", err)
	}
	if decodeErr.Index != 1 {
		t.Errorf("expected record index 1, got %d", decodeErr.Index)
	}
	if decodeErr.Field != "tags" {
		t.Errorf("expected field %q, got %q", "tags", decodeErr.Field)
	}
}

func TestDecodeMissingPresenterName(t *testing.T) {
	feed := `[{
		"id": 1, "title": "t", "body": "b", "tags": "a",
		"level": "l", "created_at": "x", "updated_at": "x",
		"room": "r", "url": "u",
		"presenter": {"bio": "no name"}
	}]`

	_, err := DecodeTalks([]byte(feed))
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected *DecodeError, got %v", err)
	}
	if decodeErr.Field != "presenter.name" {
		t.Errorf("expected field %q, got %q", "presenter.name", decodeErr.Field)
	}
}

func TestDecodeBioEncodings(t *testing.T) {
	record := func(presenter string) string {
		return `[{
			"id": 1, "title": "t", "body": "b", "tags": "a",
			"level": "l", "created_at": "x", "updated_at": "x",
			"room": "r", "url": "u",
			"presenter": ` + presenter + `
		}]`
	}

	cases := []struct {
		name      string
		presenter string
		wantBio   *string
	}{
		{"absent", `{"name": "n"}`, nil},
		{"null", `{"name": "n", "bio": null}`, nil},
		{"string", `{"name": "n", "bio": "hello"}`, strPtr("hello")},
	}

	for _, c := range cases {
		talks, err := DecodeTalks([]byte(record(c.presenter)))
		if err != nil {
			t.Fatalf("%s: decode failed: %v", c.name, err)
		}
		bio := talks[0].Presenter.Bio
		switch {
		case c.wantBio == nil && bio != nil:
			t.Errorf("%s: expected nil bio, got %q", c.name, *bio)
		case c.wantBio != nil && (bio == nil || *bio != *c.wantBio):
			t.Errorf("%s: expected bio %q, got %v", c.name, *c.wantBio, bio)
		}
	}
}

func TestDecodeTimestampTolerance(t *testing.T) {
	record := func(startsAt string) string {
		return `[{
			"id": 1, "title": "t", "body": "b", "tags": "a",
			"level": "l", "created_at": "x", "updated_at": "x",
			"room": "r", "url": "u", "starts_at": ` + startsAt + `,
			"presenter": {"name": "n"}
		}]`
	}

	cases := []struct {
		name      string
		startsAt  string
		wantValue bool
	}{
		{"valid", `"2016-06-21T09:00:00Z"`, true},
		{"null", `null`, false},
		{"garbage", `"not a timestamp"`, false},
		{"empty", `""`, false},
	}

	for _, c := range cases {
		talks, err := DecodeTalks([]byte(record(c.startsAt)))
		if err != nil {
			t.Fatalf("%s: unparseable timestamp must not fail the decode: %v", c.name, err)
		}
		if got := talks[0].StartsAt != nil; got != c.wantValue {
			t.Errorf("%s: StartsAt present = %v, want %v", c.name, got, c.wantValue)
		}
	}
}

func TestDecodePreservesFeedOrder(t *testing.T) {
	feed := `[
		{"id": 3, "title": "c", "body": "b", "tags": "x", "level": "l",
		 "created_at": "x", "updated_at": "x", "room": "r", "url": "u",
		 "presenter": {"name": "n"}},
		{"id": 1, "title": "a", "body": "b", "tags": "x", "level": "l",
		 "created_at": "x", "updated_at": "x", "room": "r", "url": "u",
		 "presenter": {"name": "n"}},
		{"id": 2, "title": "b", "body": "b", "tags": "x", "level": "l",
		 "created_at": "x", "updated_at": "x", "room": "r", "url": "u",
		 "presenter": {"name": "n"}}
	]`

	talks, err := DecodeTalks([]byte(feed))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	ids := []int{talks[0].ID, talks[1].ID, talks[2].ID}
	if !reflect.DeepEqual(ids, []int{3, 1, 2}) {
		t.Errorf("feed order not preserved: %v", ids)
	}
}

func TestDecodeMalformedJSON(t *testing.T) {
	if _, err := DecodeTalks([]byte(`{not json`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func strPtr(s string) *string {
	return &s
}
