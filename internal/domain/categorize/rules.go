package categorize

import "github.com/finsight/finsight/internal/domain/transactions"

// Rule maps keywords to a category. Priority weights the final score so
// specific merchants can beat broad catch-alls that share a keyword.
type Rule struct {
	Category string
	Type     transactions.Type
	Keywords []string
	Priority int // 1..10, higher wins
}

var defaultRules = []Rule{
	{
		Category: "Subscriptions",
		Type:     transactions.TypeExpense,
		Priority: 9,
		Keywords: []string{
			"netflix", "spotify", "hulu", "disney+", "hbo max", "youtube premium",
			"apple.com/bill", "prime video", "audible", "patreon", "subscription",
			"membership fee", "monthly plan",
		},
	},
	{
		Category: "Gas & Fuel",
		Type:     transactions.TypeExpense,
		Priority: 8,
		Keywords: []string{
			"shell", "chevron", "exxon", "mobil", "bp", "sunoco", "valero",
			"arco", "marathon petro", "fuel", "gas station", "speedway",
		},
	},
	{
		Category: "Groceries",
		Type:     transactions.TypeExpense,
		Priority: 8,
		Keywords: []string{
			"kroger", "safeway", "albertsons", "trader joe", "whole foods",
			"aldi", "publix", "wegmans", "grocery", "supermarket", "food lion",
			"sprouts", "h-e-b",
		},
	},
	{
		Category: "Food & Dining",
		Type:     transactions.TypeExpense,
		Priority: 7,
		Keywords: []string{
			"starbucks", "mcdonald", "chipotle", "subway", "dunkin", "taco bell",
			"wendy", "domino", "pizza", "doordash", "grubhub", "uber eats",
			"restaurant", "cafe", "coffee", "diner", "bakery", "sushi",
		},
	},
	{
		Category: "Transportation",
		Type:     transactions.TypeExpense,
		Priority: 7,
		Keywords: []string{
			"uber", "lyft", "metro", "transit", "amtrak", "parking", "toll",
			"mta", "bart", "caltrain", "taxi",
		},
	},
	{
		Category: "Travel",
		Type:     transactions.TypeExpense,
		Priority: 7,
		Keywords: []string{
			"airline", "airways", "delta air", "united air", "southwest air",
			"marriott", "hilton", "hyatt", "airbnb", "expedia", "booking.com",
			"hotel", "resort", "rental car", "hertz", "avis",
		},
	},
	{
		Category: "Health & Fitness",
		Type:     transactions.TypeExpense,
		Priority: 7,
		Keywords: []string{
			"pharmacy", "cvs", "walgreens", "rite aid", "gym", "fitness",
			"planet fitness", "equinox", "clinic", "dental", "medical",
			"urgent care", "optometry",
		},
	},
	{
		Category: "Entertainment",
		Type:     transactions.TypeExpense,
		Priority: 6,
		Keywords: []string{
			"cinema", "amc theatres", "regal", "ticketmaster", "stubhub",
			"steam games", "playstation", "xbox", "nintendo", "bowling",
			"arcade", "concert",
		},
	},
	{
		Category: "Bills & Utilities",
		Type:     transactions.TypeExpense,
		Priority: 6,
		Keywords: []string{
			"electric", "water bill", "utility", "comcast", "xfinity",
			"verizon", "at&t", "t-mobile", "spectrum", "internet svc",
			"sewer", "trash service", "pg&e", "con edison", "insurance",
		},
	},
	{
		Category: "Shopping",
		Type:     transactions.TypeExpense,
		Priority: 5,
		Keywords: []string{
			"amazon", "walmart", "target", "costco", "best buy", "ebay",
			"etsy", "nordstrom", "macys", "ikea", "fabletics", "nike",
			"old navy", "marshalls", "tj maxx",
		},
	},
	{
		Category: "Education",
		Type:     transactions.TypeExpense,
		Priority: 6,
		Keywords: []string{
			"tuition", "university", "college", "coursera", "udemy",
			"textbook", "school fee", "student",
		},
	},
	{
		Category: "Personal Care",
		Type:     transactions.TypeExpense,
		Priority: 6,
		Keywords: []string{
			"salon", "barber", "spa ", "nail", "haircut", "cosmetic",
			"sephora", "ulta",
		},
	},
	{
		Category: "Home Improvement",
		Type:     transactions.TypeExpense,
		Priority: 6,
		Keywords: []string{
			"home depot", "lowes", "ace hardware", "menards", "plumbing",
			"hvac", "landscap", "pest control",
		},
	},
	{
		Category: "Fees & Charges",
		Type:     transactions.TypeExpense,
		Priority: 4,
		Keywords: []string{
			"overdraft", "service fee", "maintenance fee", "atm fee",
			"late fee", "finance charge", "foreign transaction fee",
			"wire fee", "nsf fee",
		},
	},

	{
		Category: "Salary",
		Type:     transactions.TypeIncome,
		Priority: 9,
		Keywords: []string{
			"payroll", "direct dep", "direct deposit", "salary", "paycheck",
			"wages",
		},
	},
	{
		Category: "Freelance",
		Type:     transactions.TypeIncome,
		Priority: 7,
		Keywords: []string{
			"upwork", "fiverr", "freelance", "consulting", "invoice payment",
			"contract payment",
		},
	},
	{
		Category: "Investment",
		Type:     transactions.TypeIncome,
		Priority: 7,
		Keywords: []string{
			"dividend", "vanguard", "fidelity", "schwab", "brokerage",
			"capital gain", "robinhood",
		},
	},
	{
		Category: "Interest",
		Type:     transactions.TypeIncome,
		Priority: 6,
		Keywords: []string{
			"interest paid", "interest earned", "interest payment",
			"apy earned",
		},
	},
	{
		Category: transactions.CategoryRefunds,
		Type:     transactions.TypeIncome,
		Priority: 8,
		Keywords: []string{
			"refund", "return", "reversal", "rebate", "chargeback",
			"merchandise credit", "statement credit", "credit adjustment",
		},
	},
	{
		Category: "Cashback",
		Type:     transactions.TypeIncome,
		Priority: 8,
		Keywords: []string{
			"cashback", "cash back", "rewards redemption", "bonus reward",
		},
	},
}
