package domain

import (
	"encoding/json"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestReps_Canonical(t *testing.T) {
	tests := []struct {
		name    string
		in      string // JSON
		want    string
		wantOK  bool
		isCount bool
	}{
		{"plain number", `12`, "12", true, true},
		{"digit string", `"10"`, "10", true, true},
		{"range", `"8 - 12"`, "8-12", true, false},
		{"placeholder", `"Máximo"`, "15", true, true},
		{"placeholder lower no accent", `"maximo"`, "15", true, true},
		{"word", `"hasta el fallo"`, "hasta el fallo", false, false},
		{"null", `null`, "null", false, false},
		{"fraction", `7.5`, "7.5", false, false},
		{"negative number", `-5`, "-5", false, false},
		{"negative string", `"-5"`, "-5", false, false},
		{"beyond int32", `1e20`, "100000000000000000000", false, false},
		{"inverted range", `"12-8"`, "12-8", false, false},
		{"flat range", `"10-10"`, "10-10", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Reps
			if err := json.Unmarshal([]byte(tt.in), &r); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			got, ok := r.Canonical()
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got.String() != tt.want {
				t.Errorf("got %q, want %q", got.String(), tt.want)
			}
			if ok && got.IsCount() != tt.isCount {
				t.Errorf("IsCount = %v, want %v", got.IsCount(), tt.isCount)
			}
		})
	}
}

func TestReps_CanonicalConstructedCount(t *testing.T) {
	if _, ok := RepCount(-1).Canonical(); ok {
		t.Error("negative count accepted")
	}
	if got, ok := RepCount(0).Canonical(); !ok || got.Count != 0 {
		t.Errorf("zero count = %v, %v", got, ok)
	}
}

func TestReps_JSONOutput(t *testing.T) {
	out, err := json.Marshal(struct {
		A Reps `json:"a"`
		B Reps `json:"b"`
	}{RepCount(15), RepRange(8, 12)})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"a":15,"b":"8-12"}` {
		t.Errorf("got %s", out)
	}
}

func TestReps_BSONRoundTrip(t *testing.T) {
	type doc struct {
		Count Reps `bson:"count"`
		Range Reps `bson:"range"`
		Load  Load `bson:"load"`
		Text  Load `bson:"text"`
	}
	in := doc{Count: RepCount(10), Range: RepRange(6, 8), Load: LoadAmount(22.5), Text: Load{Text: "peso corporal"}}
	raw, err := bson.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out doc
	if err := bson.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out != in {
		t.Errorf("round trip mismatch: %+v vs %+v", out, in)
	}

	if bson.Raw(raw).Lookup("count").Type != bson.TypeInt32 {
		t.Error("plain counts should be stored as integers")
	}
}

func TestAttribute_UnmarshalJSON(t *testing.T) {
	var p UserProfile
	body := `{"_id":"u1","edad":30,"peso":"70","nombre":"Ana","altura":null}`
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Age != "30" || p.Weight != "70" || p.Name != "Ana" || p.Height != "" {
		t.Errorf("unexpected profile: %+v", p)
	}
}

func TestRoutine_FindExerciseFirstMatch(t *testing.T) {
	r := Routine{Sessions: []RoutineSession{
		{Day: "Lunes", Exercises: []RoutineExercise{{ExerciseID: "a"}, {ExerciseID: "b"}}},
		{Day: "Martes", Exercises: []RoutineExercise{{ExerciseID: "b"}}},
	}}
	si, ei, ok := r.FindExercise("b")
	if !ok || si != 0 || ei != 1 {
		t.Errorf("got (%d,%d,%v), want first occurrence (0,1,true)", si, ei, ok)
	}
	if _, _, ok := r.FindExercise("zz"); ok {
		t.Error("unexpected match")
	}
}
