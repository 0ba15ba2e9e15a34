package calendar

// ExampleReadings returns the built-in reading set used whenever the
// calendar source is unreachable or returns nothing usable.
func ExampleReadings() []Reading {
	return []Reading{
		{
			Type:      "first_reading",
			Title:     "Première lecture",
			Reference: "Is 9, 1-6",
			Body: "Le peuple qui marchait dans les ténèbres a vu se lever une grande lumière. " +
				"Sur les habitants du pays de l'ombre, une lumière a resplendi. " +
				"Tu as prodigué la joie, tu as fait grandir l'allégresse.",
		},
		{
			Type:      "psalm",
			Title:     "Psaume",
			Reference: "Ps 95 (96)",
			Body: "Chantez au Seigneur un chant nouveau,\nchantez au Seigneur, terre entière,\n" +
				"chantez au Seigneur et bénissez son nom !",
		},
		{
			Type:      "gospel",
			Title:     "Évangile",
			Reference: "Lc 2, 1-14",
			Body: "En ces jours-là, parut un édit de l'empereur Auguste, ordonnant de recenser toute la terre.\n\n" +
				"Or, pendant qu'ils étaient là, le temps où Marie devait enfanter fut accompli. " +
				"Et elle mit au monde son fils premier-né ; elle l'emmaillota et le coucha dans une mangeoire.",
		},
	}
}
