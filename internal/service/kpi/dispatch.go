package kpi

// dispatchTable maps each warehouse KPI function to its ordered parameter
// list. Arguments are read positionally from the request's parameter mapping;
// parameters absent from a request are passed to the warehouse as NULL.
//
// The table is a process-wide constant; it mirrors the function catalog of
// the dwh schema.
var dispatchTable = map[string][]string{
	"fn_weekly_avg_ticket_by_venue": {
		"p_company_name", "p_week_number", "p_year",
	},
	"fn_estimated_profit_by_company_and_period": {
		"p_company_name", "p_year", "p_week_number", "p_month_number",
	},
	"fn_estimated_profit_by_venue_and_period": {
		"p_company_name", "p_venue_name", "p_year", "p_week_number", "p_month_number",
	},
	"fn_estimated_profit_by_venues_and_week": {
		"p_company_name", "p_year", "p_week_number",
	},
	"fn_personnel_expense_ratio": {
		"p_company_name", "p_year", "p_venue_name", "p_week_number", "p_month_number",
	},
	"fn_total_income_by_period": {
		"p_company_name", "p_year", "p_week_number", "p_month_number",
	},
	"fn_week_total_attendees": {
		"p_company_name", "p_week_number", "p_year",
	},
	"fn_weekly_attendance_by_venue": {
		"p_company_name", "p_week_number", "p_year",
	},
	"fn_weekly_avg_income_per_attendee": {
		"p_company_name", "p_week_number", "p_year",
	},
	"fn_weekly_sales_comparison_by_section": {
		"p_company_name", "p_week_number", "p_year",
	},
	"fn_weekly_venues_income": {
		"p_company_name", "p_week_number", "p_year", "p_month_number",
	},
	"get_debit_variation_by_company_and_period": {
		"p_company_name", "p_week_number", "p_year", "p_month_number",
	},
	"get_debit_variation_by_venue_and_period": {
		"p_company_name", "p_venue_name", "p_year", "p_week_number", "p_month_number",
	},
	"get_venue_income_by_period": {
		"p_company_name", "p_venue_name", "p_year", "p_week_number", "p_month_number",
	},
	"fn_personnel_expense_ratio2": {
		"p_company_name", "p_venue_name", "p_year", "p_week_number", "p_month_number",
	},
	"fn_weekly_total_income_no_digital": {
		"p_company_name", "p_week_number", "p_year",
	},
	"fn_weekly_venues_income_no_digital": {
		"p_company_name", "p_week_number", "p_year",
	},
	"get_departmental_expenses": {
		"p_company_name", "p_year", "p_month_number",
	},
}

// Lookup returns the ordered parameter list for a warehouse KPI function.
func Lookup(function string) ([]string, bool) {
	params, ok := dispatchTable[function]
	return params, ok
}
