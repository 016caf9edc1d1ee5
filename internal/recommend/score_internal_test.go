package recommend

import (
	"testing"
)

func Test_durationTerm(t *testing.T) {
	tests := []struct {
		duration, target int
		want             float64
	}{
		{duration: 30, target: 30, want: 35},
		{duration: 31, target: 30, want: 28},
		{duration: 25, target: 30, want: 28},
		{duration: 36, target: 30, want: 21},
		{duration: 40, target: 30, want: 21},
		{duration: 50, target: 30, want: 7},
		{duration: 54, target: 30, want: 0},
		{duration: 90, target: 30, want: 0},
	}
	for _, tt := range tests {
		if got := durationTerm(tt.duration, tt.target); got != tt.want {
			t.Errorf("durationTerm(%d, %d) = %v, want %v", tt.duration, tt.target, got, tt.want)
		}
	}
}

func Test_intensityTerm(t *testing.T) {
	tests := []struct {
		intensity  Intensity
		experience Experience
		want       float64
	}{
		{IntensityLow, ExperienceBeginner, 15},
		{IntensityLowModerate, ExperienceBeginner, 15},
		{IntensityModerate, ExperienceBeginner, 8},
		{IntensityHigh, ExperienceBeginner, 0},
		{IntensityLowModerate, ExperienceIntermediate, 8},
		{IntensityLow, ExperienceIntermediate, 0},
		{IntensityModerateHigh, ExperienceAdvanced, 8},
		{IntensityVeryHigh, ExperienceAdvanced, 15},
		{"extreme", ExperienceAdvanced, 0},
	}
	for _, tt := range tests {
		if got := intensityTerm(tt.intensity, tt.experience); got != tt.want {
			t.Errorf("intensityTerm(%s, %s) = %v, want %v", tt.intensity, tt.experience, got, tt.want)
		}
	}
}

func Test_goalTerm(t *testing.T) {
	strength := testItem("Push Day", CategoryStrength, 55, IntensityModerate)
	strength.CaloriesBurned = 100
	cardio := testItem("Interval Running", CategoryCardio, 30, IntensityHigh)
	cardio.CaloriesBurned = 300
	stretch := testItem("Basic Stretching", CategoryFlexibility, 20, IntensityLow)
	stretch.CaloriesBurned = 160

	tests := []struct {
		name  string
		item  Item
		goals []string
		want  float64
	}{
		{name: "no goals", item: cardio, goals: nil, want: 0},
		{name: "high burn for weight loss", item: cardio, goals: []string{"weight_loss"}, want: 15},
		{name: "moderate burn for weight loss", item: stretch, goals: []string{"weight_loss"}, want: 8},
		{name: "low burn for weight loss", item: strength, goals: []string{"weight_loss"}, want: 0},
		{name: "strength for muscle building", item: strength, goals: []string{"muscle_building"}, want: 15},
		{name: "best goal wins", item: strength, goals: []string{"weight_loss", "strength"}, want: 15},
		{name: "endurance", item: cardio, goals: []string{"endurance"}, want: 15},
		{name: "stress relief", item: stretch, goals: []string{"Stress_Relief"}, want: 15},
		{name: "general fitness", item: strength, goals: []string{"general_fitness"}, want: 8},
		{name: "unrelated goal", item: cardio, goals: []string{"flexibility"}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := goalTerm(tt.item, tt.goals); got != tt.want {
				t.Errorf("goalTerm() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_styleTerm(t *testing.T) {
	bodyweight := testItem("Push-Up Progression", CategoryStrength, 25, IntensityLowModerate)
	barbell := testItem("Leg Day Power", CategoryStrength, 65, IntensityHigh, "barbell", "squat_rack")
	yoga := testItem("Morning Yoga", CategoryFlexibility, 30, IntensityLow, "mat")

	tests := []struct {
		name   string
		item   Item
		styles []string
		want   float64
	}{
		{name: "no styles", item: barbell, styles: nil, want: 10},
		{name: "weightlifting", item: barbell, styles: []string{"weightlifting"}, want: 10},
		{name: "bodyweight needs no equipment", item: barbell, styles: []string{"bodyweight"}, want: 0},
		{name: "bodyweight and strength training", item: bodyweight, styles: []string{"bodyweight", "strength_training"}, want: 20},
		{name: "capped", item: yoga, styles: []string{"yoga", "pilates", "stretching"}, want: 20},
		{name: "misaligned", item: yoga, styles: []string{"running"}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := styleTerm(tt.item, tt.styles); got != tt.want {
				t.Errorf("styleTerm() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_equipmentTerm(t *testing.T) {
	facility := &UserProfile{Equipment: EquipmentAccess{FullFacility: true, Owned: nil}}
	home := &UserProfile{Equipment: EquipmentAccess{FullFacility: false, Owned: []Equipment{"dumbbells"}}}

	tests := []struct {
		name    string
		profile *UserProfile
		item    Item
		want    float64
	}{
		{name: "facility user on machine", profile: facility,
			item: testItem("Rowing Machine", CategoryCardio, 30, IntensityModerate, "rowing_machine"), want: 25},
		{name: "facility user on free weights", profile: facility,
			item: testItem("Curls", CategoryStrength, 30, IntensityModerate, "dumbbells"), want: 22},
		{name: "home user compatible", profile: home,
			item: testItem("Curls", CategoryStrength, 30, IntensityModerate, "dumbbells"), want: 22},
		{name: "home user incompatible", profile: home,
			item: testItem("Rowing Machine", CategoryCardio, 30, IntensityModerate, "rowing_machine"), want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := equipmentTerm(tt.item, tt.profile, ResolveEquipment(tt.profile.Equipment))
			if got != tt.want {
				t.Errorf("equipmentTerm() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_finalScore(t *testing.T) {
	tests := []struct {
		name string
		b    ScoreBreakdown
		want float64
	}{
		{name: "clamped above", b: ScoreBreakdown{Duration: 35, Equipment: 25, Style: 20, Goal: 15, Intensity: 15, Jitter: 5, Bonus: 15}, want: 100},
		{name: "clamped below", b: ScoreBreakdown{Duration: 0, Equipment: 0, Penalty: 10}, want: 0},
		{name: "rounded", b: ScoreBreakdown{Duration: 35, Jitter: 1.234}, want: 36.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := finalScore(tt.b); got != tt.want {
				t.Errorf("finalScore() = %v, want %v", got, tt.want)
			}
		})
	}
}
