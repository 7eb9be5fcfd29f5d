package risk

import "github.com/shopspring/decimal"

func cost(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// sampleSite mirrors a small warehouse assessment.
func sampleSite() Site {
	return Site{
		ID:         "site-1",
		Name:       "Stabilimento Nord",
		Address:    "Via Roma 1",
		ClientName: "ACME",
		RootZones: []Zone{
			{
				ID:   "z-capannone",
				Name: "Capannone",
				SubZones: []*Zone{
					{
						ID:   "z-presse",
						Name: "Area Presse",
						Assets: []Asset{
							{
								ID:   "a-pressa",
								Name: "Pressa",
								Type: "Macchinario",
								Risks: []RiskFactor{
									{ID: "r1", Name: "Cavi scoperti", Probability: 4, Severity: 5, Category: "Elettrico", Status: StatusOpen, EstimatedCost: cost(1200)},
									{ID: "r2", Name: "Protezioni assenti", Probability: 2, Severity: 5, Category: "Meccanico", Status: StatusInProgress},
								},
							},
						},
					},
				},
				Assets: []Asset{
					{
						ID:   "a-scaffale",
						Name: "Scaffale",
						Type: "Struttura",
						Risks: []RiskFactor{
							{ID: "r3", Name: "Carico eccessivo", Probability: 1, Severity: 3, Status: StatusResolved, EstimatedCost: cost(300)},
						},
					},
				},
			},
			{
				ID:   "z-uffici",
				Name: "Uffici",
			},
		},
	}
}
