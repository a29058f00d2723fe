package models

// All returns every model managed by this application, in migration order
func All() []interface{} {
	return []interface{}{
		&Member{},
		&SubscriptionType{},
		&Subscription{},
		&SubscriptionPart{},
		&ContributionRound{},
		&ContributionOption{},
		&ContributionCondition{},
		&ContributionSelection{},
		&BusinessYear{},
		&BillItemType{},
		&Bill{},
		&BillItem{},
		&Setting{},
	}
}
