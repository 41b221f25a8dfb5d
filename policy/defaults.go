package policy

// DefaultTable returns the untrained table of the learning agent (Black). It enumerates every state Black
// can face against OpponentTable, grouped by turn, with equal weights per state.
func DefaultTable() *Table {
	return NewTable(
		// Turn 2
		Entry{"bbbowowow", []Candidate{{"A1>A2", 1.0 / 2, -1}, {"A1>B2", 1.0 / 2, 1}}},
		Entry{"bbbwoooww", []Candidate{{"B1>A2", 1.0 / 3, 1}, {"B1>B2", 1.0 / 3, 1}, {"C1>C2", 1.0 / 3, -1}}},
		Entry{"bbboowwwo", []Candidate{{"A1>A2", 1.0 / 3, -1}, {"B1>B2", 1.0 / 3, 1}, {"B1>C2", 1.0 / 3, 1}}},
		// Turn 4
		Entry{"bobwoooow", []Candidate{{"C1>C2", 1, 0}}},
		Entry{"boboowwoo", []Candidate{{"A1>A2", 1, 0}}},
		Entry{"bobbowowo", []Candidate{{"A2>A3", 1.0 / 2, 0}, {"A2>B3", 1.0 / 2, 0}}},
		Entry{"bbowwboow", []Candidate{{"A1>B2", 1.0 / 2, 0}, {"B1>A2", 1.0 / 2, 0}}},
		Entry{"obbbwwwoo", []Candidate{{"B1>C2", 1.0 / 2, 0}, {"C1>B2", 1.0 / 2, 0}}},
		Entry{"bobwobowo", []Candidate{{"C2>B3", 1.0 / 2, 0}, {"C2>C3", 1.0 / 2, 0}}},
		Entry{"obbowooow", []Candidate{{"C1>B2", 1.0 / 2, -1}, {"C1>C2", 1.0 / 2, 1}}},
		Entry{"obbowowoo", []Candidate{{"C1>B2", 1.0 / 2, -1}, {"C1>C2", 1.0 / 2, 1}}},
		Entry{"obbobwwoo", []Candidate{{"B1>C2", 1.0 / 3, -1}, {"B2>A3", 1.0 / 3, 1}, {"B2>B3", 1.0 / 3, 1}}},
		Entry{"bobwwoowo", []Candidate{{"A1>B2", 1.0 / 3, -1}, {"C1>B2", 1.0 / 3, 1}, {"C1>C2", 1.0 / 3, -1}}},
		Entry{"bbowowoow", []Candidate{{"B1>A2", 1.0 / 3, -1}, {"B1>B2", 1.0 / 3, -1}, {"B1>C2", 1.0 / 3, 1}}},
		Entry{"bobowwowo", []Candidate{{"A1>A2", 1.0 / 3, -1}, {"A1>B2", 1.0 / 3, 1}, {"C1>B2", 1.0 / 3, -1}}},
		Entry{"obbwowwoo", []Candidate{{"B1>A2", 1.0 / 3, 1}, {"B1>B2", 1.0 / 3, -1}, {"B1>C2", 1.0 / 3, -1}}},
		Entry{"bobbwooow", []Candidate{{"A1>B2", 1.0 / 4, 0}, {"C1>B2", 1.0 / 4, 0}, {"C1>C2", 1.0 / 4, -1}, {"A2>A3", 1.0 / 4, 1}}},
		Entry{"bobowbwoo", []Candidate{{"A1>A2", 1.0 / 4, -1}, {"A1>B2", 1.0 / 4, 0}, {"C1>B2", 1.0 / 4, 0}, {"C2>C3", 1.0 / 4, 1}}},
		Entry{"obbwbooow", []Candidate{{"B1>A2", 1.0 / 4, -1}, {"C1>C2", 1.0 / 4, -1}, {"B2>B3", 1.0 / 4, 1}, {"B2>C3", 1.0 / 4, 1}}},
		// Turn 6
		Entry{"boowwwooo", []Candidate{{"A1>B2", 1, 0}}},
		Entry{"oobwwwooo", []Candidate{{"C1>B2", 1, 0}}},
		Entry{"oobbbwooo", []Candidate{{"A2>A3", 1.0 / 2, 0}, {"B2>B3", 1.0 / 2, 0}}},
		Entry{"boobbwooo", []Candidate{{"A2>A3", 1.0 / 2, 0}, {"B2>B3", 1.0 / 2, 0}}},
		Entry{"boobwoooo", []Candidate{{"A1>B2", 1.0 / 2, 0}, {"A2>A3", 1.0 / 2, 0}}},
		Entry{"oboobwooo", []Candidate{{"B1>C2", 1.0 / 2, 0}, {"B2>B3", 1.0 / 2, 0}}},
		Entry{"obowboooo", []Candidate{{"B1>A2", 1.0 / 2, 0}, {"B2>B3", 1.0 / 2, 0}}},
		Entry{"oobwbbooo", []Candidate{{"B2>B3", 1.0 / 2, 0}, {"C2>C3", 1.0 / 2, 0}}},
		Entry{"oobowbooo", []Candidate{{"C1>B2", 1.0 / 2, 0}, {"C2>C3", 1.0 / 2, 0}}},
		Entry{"boowbbooo", []Candidate{{"B2>B3", 1.0 / 2, 0}, {"C2>C3", 1.0 / 2, 0}}},
		Entry{"obowwbooo", []Candidate{{"B1>A2", 1.0 / 2, -1}, {"C2>C3", 1.0 / 2, 1}}},
		Entry{"obobwwooo", []Candidate{{"B1>C2", 1.0 / 2, -1}, {"A2>A3", 1.0 / 2, 1}}},
		Entry{"oobbwoooo", []Candidate{{"C1>B2", 1.0 / 3, 1}, {"C1>C2", 1.0 / 3, -1}, {"A2>A3", 1.0 / 3, 1}}},
		Entry{"booowbooo", []Candidate{{"A1>A2", 1.0 / 3, -1}, {"A1>B2", 1.0 / 3, 1}, {"C2>C3", 1.0 / 3, 1}}},
	)
}

// OpponentTable returns the fixed reference policy (White) used in self-play. Outcomes are unused.
func OpponentTable() *Table {
	return NewTable(
		// Turn 1
		Entry{"bbbooowww", []Candidate{{"A3>A2", 1.0 / 3, 0}, {"B3>B2", 1.0 / 3, 0}, {"C3>C2", 1.0 / 3, 0}}},
		// Turn 3
		Entry{"bobboooww", []Candidate{{"B3>A2", 1.0 / 3, 0}, {"B3>B2", 1.0 / 3, 0}, {"C3>C2", 1.0 / 3, 0}}},
		Entry{"bobwbooww", []Candidate{{"C3>B2", 1.0 / 2, 0}, {"C3>C2", 1.0 / 2, 0}}},
		Entry{"bbowoboww", []Candidate{{"A2>B1", 1.0 / 3, 0}, {"B3>B2", 1.0 / 3, 0}, {"B3>C2", 1.0 / 3, 0}}},
		Entry{"obbbwowow", []Candidate{{"B2>C1", 1.0 / 2, 0}, {"C3>C2", 1.0 / 2, 0}}},
		Entry{"obbobowow", []Candidate{{"A3>A2", 1.0 / 4, 0}, {"A3>B2", 1.0 / 4, 0}, {"C3>B2", 1.0 / 4, 0}, {"C3>C2", 1.0 / 4, 0}}},
		Entry{"obbbowwwo", []Candidate{{"B3>A2", 1.0 / 3, 0}, {"B3>B2", 1.0 / 3, 0}, {"C2>B1", 1.0 / 3, 0}}},
		Entry{"bobobwwwo", []Candidate{{"A3>A2", 1.0 / 2, 0}, {"A3>B2", 1.0 / 2, 0}}},
		Entry{"boboobwwo", []Candidate{{"A3>A2", 1.0 / 3, 0}, {"B3>B2", 1.0 / 3, 0}, {"B3>C2", 1.0 / 3, 0}}},
		// Turn 5
		Entry{"oobbbooow", []Candidate{{"C3>B2", 1.0 / 2, 0}, {"C3>C2", 1.0 / 2, 0}}},
		Entry{"boobbooow", []Candidate{{"C3>B2", 1.0 / 2, 0}, {"C3>C2", 1.0 / 2, 0}}},
		Entry{"boobwboow", []Candidate{{"B2>A1", 1.0 / 2, 0}, {"B2>B1", 1.0 / 2, 0}}},
		Entry{"oobwboowo", []Candidate{{"A2>A1", 1, 0}}},
		Entry{"boowwbowo", []Candidate{{"B2>A1", 1.0 / 3, 0}, {"B2>B1", 1.0 / 3, 0}, {"B3>C2", 1.0 / 3, 0}}},
		Entry{"boobowoow", []Candidate{{"C2>C1", 1, 0}}},
		Entry{"boowbwoow", []Candidate{{"C2>C1", 1.0 / 2, 0}, {"C3>B2", 1.0 / 2, 0}}},
		Entry{"obowbboow", []Candidate{{"A2>A1", 1.0 / 3, 0}, {"A2>B1", 1.0 / 3, 0}, {"C3>B2", 1.0 / 3, 0}}},
		Entry{"obobbwwoo", []Candidate{{"A3>B2", 1.0 / 3, 0}, {"C2>B1", 1.0 / 3, 0}, {"C2>C1", 1.0 / 3, 0}}},
		Entry{"oobbwbwoo", []Candidate{{"B2>B1", 1.0 / 2, 0}, {"B2>C1", 1.0 / 2, 0}}},
		Entry{"oboobooow", []Candidate{{"C3>B2", 1.0 / 2, 0}, {"C3>C2", 1.0 / 2, 0}}},
		Entry{"oboobowoo", []Candidate{{"A3>B2", 1.0 / 2, 0}, {"A3>A2", 1.0 / 2, 0}}},
		Entry{"oobobbwoo", []Candidate{{"A3>A2", 1.0 / 2, 0}, {"A3>B2", 1.0 / 2, 0}}},
		Entry{"booobbwoo", []Candidate{{"A3>A2", 1.0 / 2, 0}, {"A3>B2", 1.0 / 2, 0}}},
		Entry{"oobbwwowo", []Candidate{{"B2>B1", 1.0 / 2, 0}, {"B3>A2", 1.0 / 2, 0}}},
		Entry{"booobwowo", []Candidate{{"C2>C1", 1, 0}}},
		Entry{"oobwbwwoo", []Candidate{{"A2>A1", 1.0 / 2, 0}, {"A3>B2", 1.0 / 2, 0}}},
		Entry{"oobwobwoo", []Candidate{{"A2>A1", 1, 0}}},
		Entry{"oboowbwoo", []Candidate{{"A3>A2", 1, 0}}},
		// Turn 7
		Entry{"ooobwbooo", []Candidate{{"B2>B1", 1, 0}}},
		Entry{"ooowbwooo", []Candidate{{"A2>A1", 1.0 / 2, 0}, {"C2>C1", 1.0 / 2, 0}}},
	)
}
