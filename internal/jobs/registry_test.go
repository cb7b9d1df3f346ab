package jobs

import "testing"

func TestRegistryPreservesOrder(t *testing.T) {
	first := &testJob{name: "aggregate-actuals"}
	second := &testJob{name: "generate-forecast"}
	third := &testJob{name: "generate-schedule"}

	registry := NewRegistry(first, second)
	registry.Register(third)
	registry.Register(nil)

	jobs := registry.Jobs()
	if len(jobs) != 3 {
		t.Fatalf("jobs = %d, want 3", len(jobs))
	}
	want := []string{"aggregate-actuals", "generate-forecast", "generate-schedule"}
	for i, name := range want {
		if jobs[i].Name() != name {
			t.Fatalf("job %d = %s, want %s", i, jobs[i].Name(), name)
		}
	}
}

func TestRegistryCopiesSlice(t *testing.T) {
	registry := NewRegistry(&testJob{name: "only"})
	jobs := registry.Jobs()
	jobs[0] = &testJob{name: "mutated"}

	if registry.Jobs()[0].Name() != "only" {
		t.Fatal("mutating the returned slice must not affect the registry")
	}
}
