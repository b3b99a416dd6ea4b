package model

// Activity is one economic activity registered for an organization.
type Activity struct {
	Description string
	Code        string
	Primary     bool
}

// Organization is the issuer-lookup read model. Source payloads use camelCase
// keys, older ones snake_case; both are accepted.
type Organization struct {
	TaxID               string
	BusinessName        string
	Email               string
	Phone               string
	Address             string
	BranchCode          string
	DescriptiveActivity string
	RegionalAddress     string
	Resolution          *Resolution
	TradeName           string
	Website             string
	Branches            []string
	Activities          []Activity
	Commune             string
	City                string
}

// OrganizationFromPayload maps the organization lookup payload.
func OrganizationFromPayload(payload Attributes) *Organization {
	o := &Organization{
		TaxID:               payload.str("taxId", "tax_id", "rut"),
		BusinessName:        payload.str("businessName", "business_name"),
		Email:               payload.str("email"),
		Phone:               payload.str("phone"),
		Address:             payload.str("address"),
		BranchCode:          payload.str("branchCode", "branch_code"),
		DescriptiveActivity: payload.str("activityDescription", "activity_description"),
		RegionalAddress:     payload.str("regionalAddress", "regional_address"),
		TradeName:           payload.str("tradeName", "trade_name"),
		Website:             payload.str("website"),
		Commune:             payload.str("commune"),
		City:                payload.str("city"),
	}

	if bag, ok := payload.object("resolution"); ok {
		o.Resolution = &Resolution{
			Date:   bag.str("date", "FchResol"),
			Number: bag.integer("number", "NroResol"),
		}
	}

	if v, ok := payload.first("branches", "branch_list"); ok {
		if raw, isList := v.([]any); isList {
			for _, b := range raw {
				if s, isString := b.(string); isString {
					o.Branches = append(o.Branches, s)
				}
			}
		}
	}

	for _, bag := range payload.list("activities") {
		o.Activities = append(o.Activities, Activity{
			Description: bag.str("activity", "description", "giro"),
			Code:        bag.str("code", "economicActivityCode", "economic_activity_code"),
			Primary:     bag.boolean("primary", "main"),
		})
	}

	return o
}

// PrimaryActivity returns the first activity flagged primary, falling back to
// the first registered activity.
func (o *Organization) PrimaryActivity() (Activity, bool) {
	for _, a := range o.Activities {
		if a.Primary {
			return a, true
		}
	}
	if len(o.Activities) > 0 {
		return o.Activities[0], true
	}
	return Activity{}, false
}

// ToIssuer derives issuer data from the organization: the business activity
// comes from the primary activity, or from the descriptive activity text when
// no activities are registered.
func (o *Organization) ToIssuer() Issuer {
	issuer := Issuer{
		TaxID:            o.TaxID,
		BusinessName:     o.BusinessName,
		BusinessActivity: o.DescriptiveActivity,
		Address:          o.Address,
		Commune:          o.Commune,
		BranchCode:       o.BranchCode,
		Phone:            o.Phone,
	}
	if activity, ok := o.PrimaryActivity(); ok {
		issuer.BusinessActivity = activity.Description
		issuer.EconomicActivityCode = activity.Code
	}
	return issuer
}
