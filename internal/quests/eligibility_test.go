package quests

import "testing"

func TestDecide(t *testing.T) {
	t.Parallel()

	eligible := EligibilityInputs{
		OnboardingCompleted: true,
		Paused:              false,
		AutoGenerateQuests:  true,
		ActiveQuestCount:    0,
	}

	tests := []struct {
		name   string
		mutate func(in EligibilityInputs) EligibilityInputs
		want   bool
	}{
		{
			name:   "all conditions met",
			mutate: func(in EligibilityInputs) EligibilityInputs { return in },
			want:   true,
		},
		{
			name: "onboarding incomplete",
			mutate: func(in EligibilityInputs) EligibilityInputs {
				in.OnboardingCompleted = false
				return in
			},
			want: false,
		},
		{
			name: "generation paused",
			mutate: func(in EligibilityInputs) EligibilityInputs {
				in.Paused = true
				return in
			},
			want: false,
		},
		{
			name: "auto-generate disabled",
			mutate: func(in EligibilityInputs) EligibilityInputs {
				in.AutoGenerateQuests = false
				return in
			},
			want: false,
		},
		{
			name: "active quest outstanding",
			mutate: func(in EligibilityInputs) EligibilityInputs {
				in.ActiveQuestCount = 1
				return in
			},
			want: false,
		},
		{
			name: "missing settings fail closed",
			mutate: func(in EligibilityInputs) EligibilityInputs {
				in.SettingsMissing = true
				return in
			},
			want: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Decide(tc.mutate(eligible)); got != tc.want {
				t.Fatalf("Decide = %v, want %v", got, tc.want)
			}
		})
	}
}
