package catalog

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/Theerthaprasad25/Job-Notification-App/internal/model"
)

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "jobs.json")
	payload := `[
		{"id": "j1", "title": "React Developer", "company": "Acme", "location": "Bangalore", "mode": "Remote", "source": "LinkedIn", "postedDaysAgo": 1},
		{"id": "j2", "title": "Data Analyst", "company": "Initech", "location": "Pune", "mode": "Onsite", "source": "Indeed"}
	]`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cat.Len() != 2 {
		t.Fatalf("expected 2 jobs, got %d", cat.Len())
	}

	job, ok := cat.Get("j1")
	if !ok {
		t.Fatalf("expected job j1")
	}
	if job.PostedDaysAgo == nil || *job.PostedDaysAgo != 1 {
		t.Fatalf("expected postedDaysAgo 1, got %v", job.PostedDaysAgo)
	}
	if other, _ := cat.Get("j2"); other.PostedDaysAgo != nil {
		t.Fatalf("expected absent postedDaysAgo to stay nil")
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestNewRejectsDuplicateIDs(t *testing.T) {
	t.Parallel()

	_, err := New([]model.Job{{ID: "dup"}, {ID: "dup"}})
	if err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestNewRejectsEmptyID(t *testing.T) {
	t.Parallel()

	_, err := New([]model.Job{{ID: "  "}})
	if err == nil {
		t.Fatalf("expected empty id error")
	}
}

func TestJobsReturnsDefensiveCopy(t *testing.T) {
	t.Parallel()

	cat, err := New([]model.Job{{ID: "a", Title: "Original"}})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	jobs := cat.Jobs()
	jobs[0].Title = "Mutated"

	fresh, _ := cat.Get("a")
	if fresh.Title != "Original" {
		t.Fatalf("catalog entry mutated through returned slice")
	}
}

func TestMetaUniqueSorted(t *testing.T) {
	t.Parallel()

	cat, err := New([]model.Job{
		{ID: "1", Location: "Pune", Mode: "Remote", Experience: "Fresher", Source: "LinkedIn"},
		{ID: "2", Location: "Bangalore", Mode: "Remote", Experience: "Senior", Source: "Indeed"},
		{ID: "3", Location: "Pune", Mode: "", Experience: "Fresher", Source: "LinkedIn"},
	})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	meta := cat.Meta()
	if !reflect.DeepEqual(meta.Locations, []string{"Bangalore", "Pune"}) {
		t.Fatalf("unexpected locations: %v", meta.Locations)
	}
	if !reflect.DeepEqual(meta.Modes, []string{"Remote"}) {
		t.Fatalf("expected empty mode dropped, got %v", meta.Modes)
	}
	if !reflect.DeepEqual(meta.Experiences, []string{"Fresher", "Senior"}) {
		t.Fatalf("unexpected experiences: %v", meta.Experiences)
	}
	if !reflect.DeepEqual(meta.Sources, []string{"Indeed", "LinkedIn"}) {
		t.Fatalf("unexpected sources: %v", meta.Sources)
	}
}
