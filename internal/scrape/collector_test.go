package scrape

import (
	"reflect"
	"testing"

	"github.com/dappdex/harvest/pkg/models"
)

func TestCollector_RestoresPageOrder(t *testing.T) {
	c := NewCollector()

	// Completion order is deliberately scrambled.
	c.Add(3, []models.Record{{"Name": "c"}})
	c.Add(1, []models.Record{{"Name": "a1"}, {"Name": "a2"}})
	c.Add(2, nil) // failed page
	c.Add(4, []models.Record{{"Name": "d"}})

	if c.Len() != 4 {
		t.Errorf("expected 4 pages reported, got %d", c.Len())
	}

	got := c.Sequence()
	want := []models.Record{{"Name": "a1"}, {"Name": "a2"}, {"Name": "c"}, {"Name": "d"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCollector_DuplicatePageKeepsFirst(t *testing.T) {
	c := NewCollector()

	c.Add(1, []models.Record{{"Name": "first"}})
	c.Add(1, []models.Record{{"Name": "second"}})

	got := c.Sequence()
	if len(got) != 1 || got[0]["Name"] != "first" {
		t.Errorf("expected the first result to win, got %v", got)
	}
}

func TestCollector_Empty(t *testing.T) {
	c := NewCollector()
	if got := c.Sequence(); len(got) != 0 {
		t.Errorf("expected empty sequence, got %v", got)
	}
}
