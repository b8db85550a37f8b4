package accounts

import "github.com/WinterJet2021/BahtBuddy/internal/model"

// DefaultChart returns the built-in chart of accounts: Thai banks,
// e-wallets, and common personal income and expense categories.
func DefaultChart() []model.Account {
	pairs := []struct {
		name string
		typ  model.AccountType
	}{
		// Assets: cash, banks, e-wallets.
		{"Cash", model.AccountTypeAsset},
		{"Bank - KBank", model.AccountTypeAsset},
		{"Bank - SCB", model.AccountTypeAsset},
		{"Bank - Krungthai (KTB)", model.AccountTypeAsset},
		{"Bank - Krungsri (BAY)", model.AccountTypeAsset},
		{"Bank - Bangkok Bank (BBL)", model.AccountTypeAsset},
		{"Bank - TMBThanachart (TTB)", model.AccountTypeAsset},
		{"Bank - UOB Thailand", model.AccountTypeAsset},
		{"Bank - CIMB Thai", model.AccountTypeAsset},
		{"Bank - KKP", model.AccountTypeAsset},
		{"Bank - GSB", model.AccountTypeAsset},
		{"Bank - Other", model.AccountTypeAsset},
		{"Wallet - TrueMoney", model.AccountTypeAsset},
		{"Wallet - Rabbit LINE Pay", model.AccountTypeAsset},
		{"Wallet - AirPay", model.AccountTypeAsset},
		{"Wallet - PromptPay", model.AccountTypeAsset},
		{"Wallet - PayPal", model.AccountTypeAsset},
		{"Wallet - Alipay", model.AccountTypeAsset},
		{"Wallet - WeChat Pay", model.AccountTypeAsset},
		{"Wallet - ShopeePay", model.AccountTypeAsset},
		{"Wallet - GrabPay", model.AccountTypeAsset},
		{"Wallet - Other", model.AccountTypeAsset},
		// Liabilities: credit cards.
		{"Credit Card - KBank", model.AccountTypeLiability},
		{"Credit Card - SCB", model.AccountTypeLiability},
		{"Credit Card - Krungsri (BAY/FirstChoice)", model.AccountTypeLiability},
		{"Credit Card - KTC", model.AccountTypeLiability},
		{"Credit Card - BBL", model.AccountTypeLiability},
		{"Credit Card - UOB", model.AccountTypeLiability},
		{"Credit Card - AEON", model.AccountTypeLiability},
		{"Credit Card - Citi", model.AccountTypeLiability},
		{"Credit Card - Other", model.AccountTypeLiability},
		// Income.
		{"Salary", model.AccountTypeIncome},
		{"Allowance", model.AccountTypeIncome},
		{"Freelance / Side Income", model.AccountTypeIncome},
		{"Interest / Dividends", model.AccountTypeIncome},
		{"Gifts / Other Income", model.AccountTypeIncome},
		{"Refunds / Reimbursements", model.AccountTypeIncome},
		{"Sale of Assets", model.AccountTypeIncome},
		{"Tax Refund", model.AccountTypeIncome},
		{"Bonuses / Commissions", model.AccountTypeIncome},
		{"Investment Income", model.AccountTypeIncome},
		{"Rental Income", model.AccountTypeIncome},
		{"Royalties", model.AccountTypeIncome},
		{"Grants / Scholarships", model.AccountTypeIncome},
		{"Pension / Retirement", model.AccountTypeIncome},
		{"Insurance Payouts", model.AccountTypeIncome},
		{"Lottery / Gambling Winnings", model.AccountTypeIncome},
		{"Crowdfunding / Donations", model.AccountTypeIncome},
		{"Cashback / Rewards", model.AccountTypeIncome},
		{"Selling Personal Items", model.AccountTypeIncome},
		{"Other Miscellaneous Income", model.AccountTypeIncome},
		// Expenses.
		{"Food & Dining", model.AccountTypeExpense},
		{"Transportation", model.AccountTypeExpense},
		{"Rent", model.AccountTypeExpense},
		{"Utilities", model.AccountTypeExpense},
		{"Groceries", model.AccountTypeExpense},
		{"Shopping", model.AccountTypeExpense},
		{"Health & Fitness", model.AccountTypeExpense},
		{"Entertainment", model.AccountTypeExpense},
		{"Travel", model.AccountTypeExpense},
	}

	chart := make([]model.Account, len(pairs))
	for i, p := range pairs {
		chart[i] = model.Account{Name: p.name, Type: p.typ}
	}
	return chart
}
