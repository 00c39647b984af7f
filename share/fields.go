package share

// StatisticField addresses one statistic by section heading and row label.
type StatisticField struct {
	Heading string `json:"heading"`
	Row     string `json:"row"`
}

// Statistics page section headings.
const (
	ValuationMeasures   = "Valuation Measures"
	FinancialHighlights = "Financial Highlights"
	TradingInformation  = "Trading Information"
)

// StatisticSections lists the headings returned by Snapshot.Statistics.
var StatisticSections = []string{ValuationMeasures, FinancialHighlights, TradingInformation}

// StatisticFields maps a logical field name to its location on the
// statistics page.
var StatisticFields = map[string]StatisticField{
	"market_cap":                   {ValuationMeasures, "Market Cap (intraday)"},
	"enterprise_value":             {ValuationMeasures, "Enterprise Value"},
	"trailing_pe":                  {ValuationMeasures, "Trailing P/E"},
	"forward_pe":                   {ValuationMeasures, "Forward P/E"},
	"peg_ratio":                    {ValuationMeasures, "PEG Ratio (5 yr expected)"},
	"price_per_sales":              {ValuationMeasures, "Price/Sales"},
	"price_per_book":               {ValuationMeasures, "Price/Book"},
	"enterprise_value_per_revenue": {ValuationMeasures, "Enterprise Value/Revenue"},
	"enterprise_value_per_ebitda":  {ValuationMeasures, "Enterprise Value/EBITDA"},
	"fiscal_year_ends":             {FinancialHighlights, "Fiscal Year Ends"},
	"most_recent_quarter":          {FinancialHighlights, "Most Recent Quarter"},
	"profit_margin":                {FinancialHighlights, "Profit Margin"},
	"operating_margin":             {FinancialHighlights, "Operating Margin"},
	"return_on_assets":             {FinancialHighlights, "Return on Assets"},
	"return_on_equity":             {FinancialHighlights, "Return on Equity"},
	"revenue":                      {FinancialHighlights, "Revenue"},
	"revenue_per_share":            {FinancialHighlights, "Revenue Per Share"},
	"quarterly_revenue_growth":     {FinancialHighlights, "Quarterly Revenue Growth"},
	"gross_profit":                 {FinancialHighlights, "Gross Profit"},
	"ebitda":                       {FinancialHighlights, "EBITDA"},
	"net_income_avi_to_common":     {FinancialHighlights, "Net Income Avi to Common"},
	"diluted_eps":                  {FinancialHighlights, "Diluted EPS"},
	"quarterly_earnings_growth":    {FinancialHighlights, "Quarterly Earnings Growth"},
	"total_cash":                   {FinancialHighlights, "Total Cash"},
	"total_cash_per_share":         {FinancialHighlights, "Total Cash Per Share"},
	"total_debt":                   {FinancialHighlights, "Total Debt"},
	"total_debt_per_equity":        {FinancialHighlights, "Total Debt/Equity"},
	"current_ratio":                {FinancialHighlights, "Current Ratio"},
	"book_value_per_share":         {FinancialHighlights, "Book Value Per Share"},
	"operating_cash_flow":          {FinancialHighlights, "Operating Cash Flow"},
	"levered_free_cash_flow":       {FinancialHighlights, "Levered Free Cash Flow"},
	"beta":                         {TradingInformation, "Beta"},
	"fifty_two_week_change":        {TradingInformation, "52-Week Change"},
	"sp500_fifty_two_week_change":  {TradingInformation, "S&P500 52-Week Change"},
	"fifty_two_week_high":          {TradingInformation, "52 Week High"},
	"fifty_two_week_low":           {TradingInformation, "52 Week Low"},
	"fifty_day_average":            {TradingInformation, "50-Day Moving Average"},
	"two_hundred_day_average":      {TradingInformation, "200-Day Moving Average"},
	"avg_three_month_volume":       {TradingInformation, "Avg Vol (3 month)"},
	"avg_ten_day_volume":           {TradingInformation, "Avg Vol (10 day)"},
	"shares_outstanding":           {TradingInformation, "Shares Outstanding"},
	"float":                        {TradingInformation, "Float"},
	"percent_held_by_insiders":     {TradingInformation, "% Held by Insiders"},
	"percent_held_by_institutions": {TradingInformation, "% Held by Institutions"},
	"shares_short":                 {TradingInformation, "Shares Short"},
	"short_ratio":                  {TradingInformation, "Short Ratio"},
	"short_percent_of_float":       {TradingInformation, "Short % of Float"},
	"shares_short_prior_month":     {TradingInformation, "Shares Short (prior month)"},
	"forward_dividend_rate":        {TradingInformation, "Forward Annual Dividend Rate"},
	"forward_dividend_yield":       {TradingInformation, "Forward Annual Dividend Yield"},
	"trailing_dividend_rate":       {TradingInformation, "Trailing Annual Dividend Rate"},
	"trailing_dividend_yield":      {TradingInformation, "Trailing Annual Dividend Yield"},
	"five_year_avg_dividend_yield": {TradingInformation, "5 Year Average Dividend Yield"},
	"payout_ratio":                 {TradingInformation, "Payout Ratio"},
	"dividend_date":                {TradingInformation, "Dividend Date"},
	"ex_dividend_date":             {TradingInformation, "Ex-Dividend Date"},
	"last_split_factor":            {TradingInformation, "Last Split Factor (new per old)"},
	"last_split_date":              {TradingInformation, "Last Split Date"},
}

// QuoteField reads a summary page value through a named anchor. When Split is
// set the text is split on single spaces and Part selects the piece, counting
// from the end when negative. Trim characters are then removed from both
// ends.
type QuoteField struct {
	Anchor      string
	Split       bool
	Part        int
	Trim        string
	StripCommas bool
}

// QuoteFields maps a logical field name to how it is read from the summary
// page. The market notice renders as "As of  4:00PM EDT. Market open.", so
// the time and zone are parts 3 and 4.
var QuoteFields = map[string]QuoteField{
	"stock_exchange":       {Anchor: "exchange_currency", Split: true, Part: 0},
	"currency":             {Anchor: "exchange_currency", Split: true, Part: -1},
	"price":                {Anchor: "price"},
	"change":               {Anchor: "change", Split: true, Part: 0},
	"percent_change":       {Anchor: "change", Split: true, Part: 1, Trim: "()"},
	"previous_trade_time":  {Anchor: "market_notice", Split: true, Part: 3},
	"trade_timezone":       {Anchor: "market_notice", Split: true, Part: 4, Trim: "."},
	"previous_close":       {Anchor: "previous_close"},
	"open":                 {Anchor: "open"},
	"bid":                  {Anchor: "bid"},
	"ask":                  {Anchor: "ask"},
	"day_range":            {Anchor: "day_range"},
	"fifty_two_week_range": {Anchor: "fifty_two_week_range"},
	"volume":               {Anchor: "volume", StripCommas: true},
	"avg_daily_volume":     {Anchor: "avg_daily_volume", StripCommas: true},
}

// AnalystTables maps a logical table name to its first header label on the
// analysts page.
var AnalystTables = map[string]string{
	"earnings_estimate": "Earnings Estimate",
	"revenue_estimate":  "Revenue Estimate",
	"earnings_history":  "Earnings History",
	"eps_trend":         "EPS Trend",
	"eps_revisions":     "EPS Revisions",
	"growth_estimates":  "Growth Estimates",
}
