package recommendation

var (
	learningYouth = Content{
		Title:       "Start Your Money Journey!",
		Description: "You're at the perfect age to start! Understanding money now will give you a huge advantage. Let's break it down into simple steps.",
		ActionSteps: []string{
			"Understand the difference between needs (food, shelter) and wants (fun stuff)",
			"Learn how to track money coming in and going out",
			`Watch YouTube channels like "Two Cents" or "The Financial Diet"`,
		},
	}
	learningGeneral = Content{
		Title:       "Learn the Money Basics",
		Description: "Getting the basics right is the foundation of financial success. Let's make money management feel easy and natural.",
		ActionSteps: []string{
			"Set up a simple budget using the 50/30/20 rule",
			"Understand your paycheck (taxes, deductions, net pay)",
			`Read "I Will Teach You to Be Rich" by Ramit Sethi`,
		},
	}

	emergencyYouth = Content{
		Title:       "Start Your Safety Stash",
		Description: "Having money saved up means you can handle surprises (like a broken phone) without panicking. Start small - every dollar counts!",
		ActionSteps: []string{
			"Set a goal to save $100 first, then $500",
			"Put aside money before you spend it (even $5/week adds up!)",
			"Keep it somewhere safe but easy to access (savings account)",
		},
	}
	emergencyGeneral = Content{
		Title:       "Build Your Emergency Fund",
		Description: "An emergency fund is your financial safety net. It protects you from unexpected expenses and gives you peace of mind.",
		ActionSteps: []string{
			"Start with $1,000, then build to 3-6 months of expenses",
			"Automate transfers to savings right after payday",
			"Use a high-yield savings account (4-5% interest)",
		},
	}

	startEarning = Content{
		Title:       "Start Earning Your Own Money",
		Description: "Making your own money is empowering! You'll learn valuable skills and have more control over your financial future.",
		ActionSteps: []string{
			"Try babysitting, pet sitting, or yard work in your neighborhood",
			"Sell things you make (art, baked goods, crafts)",
			"Look for part-time jobs when you're old enough (retail, food service)",
		},
	}

	debtYouth = Content{
		Title:       "Tackle What You Owe",
		Description: "Owing money can feel stressful, but you can totally handle this! The key is to make a plan and stick with it. You've got this!",
		ActionSteps: []string{
			"List out everything you owe and the interest rates",
			"Pay the minimum on everything, then extra on the highest interest debt",
			"Don't take on new debt while paying off old debt",
		},
	}
	debtGeneral = Content{
		Title:       "Create Your Debt Freedom Plan",
		Description: "Having a clear strategy to eliminate debt frees up your future income and reduces financial stress.",
		ActionSteps: []string{
			"Use the avalanche method (highest interest first) to save money",
			"Consider balance transfers for high-interest credit cards",
			"Negotiate with lenders for better rates or payment plans",
		},
	}

	smartSpending = Content{
		Title:       "Make Smart Spending Choices",
		Description: "It's not about never having fun - it's about making sure you're spending on things that actually make you happy!",
		ActionSteps: []string{
			"Wait 24 hours before buying something you want (impulse control!)",
			`Ask yourself: "Will I still care about this in a month?"`,
			"Find free or cheap alternatives (library books, free events, cooking at home)",
		},
	}

	investingTeen = Content{
		Title:       "Make Your Money Grow",
		Description: investingYouthDescription,
		ActionSteps: []string{
			"Ask a parent to help you open a custodial investment account",
			"Learn about index funds (they own a bit of everything)",
			"Start with just $10-20 a month - seriously, that's enough!",
		},
	}
	investingYoungAdult = Content{
		Title:       "Make Your Money Grow",
		Description: investingYouthDescription,
		ActionSteps: []string{
			"Open a Roth IRA - you can invest up to $7,000/year",
			"Start with a simple target-date fund or S&P 500 index fund",
			"Contribute to your employer's 401k, especially if they match",
		},
	}
	investingGeneral = Content{
		Title:       "Start Investing for Your Future",
		Description: "Time is your greatest asset when investing. Even small amounts invested consistently can grow significantly over time.",
		ActionSteps: []string{
			"Max out employer 401k match (free money!)",
			"Consider low-cost index funds (0.03-0.10% expense ratio)",
			"Diversify across stocks and bonds based on your age",
		},
	}

	bigPurchase = Content{
		Title:       "Save Smart for Your Big Goal",
		Description: "Having a specific goal makes saving way easier! Let's break down how to actually make it happen.",
		ActionSteps: []string{
			"Figure out exactly how much you need and when you need it",
			"Divide the total by the number of months - that's your monthly goal",
			"Put this money in a separate savings account so you're not tempted to spend it",
		},
	}

	incomeGrowth = Content{
		Title:       "Grow Your Income",
		Description: "Earning more money is just as important as managing what you have. Your income is your biggest wealth-building tool!",
		ActionSteps: []string{
			"Develop valuable skills through free courses (Coursera, Khan Academy)",
			"Ask for a raise or promotion after 12-18 months of great work",
			"Start a side hustle based on skills you already have",
		},
	}
)

const investingYouthDescription = "Investing sounds fancy, but it's really just putting your money to work so it grows over time. Starting young is your superpower!"

var (
	quickWinsYouth = []string{
		"Open a savings account (or check if you already have one!)",
		"Download a money tracking app like Mint or use a simple spreadsheet",
		"Unsubscribe from store emails that tempt you to spend",
		"Set up automatic savings - even $5 per week adds up to $260/year",
	}
	quickWinsGeneral = []string{
		"Open a high-yield savings account (currently 4-5% interest)",
		"Set up automatic transfers to savings on payday",
		"Review your subscriptions and cancel what you don't use",
		"Check your credit report for free at AnnualCreditReport.com",
	}

	resourcesYouth = []Resource{
		{Title: "Two Cents (YouTube)", Description: "Fun, animated videos explaining money concepts in simple terms"},
		{Title: "The Financial Diet (Website/YouTube)", Description: "Real talk about money for young adults, no judgment"},
		{Title: "Mint or Goodbudget", Description: "Free apps to track spending and create budgets easily"},
		{Title: "r/personalfinance Wiki", Description: "Comprehensive guides for every money situation"},
	}
	resourcesGeneral = []Resource{
		{Title: "r/personalfinance Wiki", Description: "Comprehensive financial advice for all situations"},
		{Title: "YNAB or Mint", Description: "Budget tracking apps to manage your money"},
		{Title: "Investopedia", Description: "Learn about investing and financial terms"},
		{Title: "NerdWallet", Description: "Compare financial products and get expert advice"},
	}
)
