package contract

// SaleABI is the fixed surface of the token-sale contract: the pricing and
// supply read functions plus the payable purchase entry point and the
// standard ERC-20 approve.
var SaleABI = []ABIEntry{
	{
		Name: "getCurrentPrice", Type: "function", StateMutability: "view",
		Outputs: []ABIParam{{Name: "", Type: "uint256"}},
	},
	{
		Name: "normalPrice", Type: "function", StateMutability: "view",
		Outputs: []ABIParam{{Name: "", Type: "uint256"}},
	},
	{
		Name: "presalePrice", Type: "function", StateMutability: "view",
		Outputs: []ABIParam{{Name: "", Type: "uint256"}},
	},
	{
		Name: "presaleActive", Type: "function", StateMutability: "view",
		Outputs: []ABIParam{{Name: "", Type: "bool"}},
	},
	{
		Name: "totalSupply", Type: "function", StateMutability: "view",
		Outputs: []ABIParam{{Name: "", Type: "uint256"}},
	},
	{
		Name: "name", Type: "function", StateMutability: "view",
		Outputs: []ABIParam{{Name: "", Type: "string"}},
	},
	{
		Name: "symbol", Type: "function", StateMutability: "view",
		Outputs: []ABIParam{{Name: "", Type: "string"}},
	},
	{
		Name: "decimals", Type: "function", StateMutability: "view",
		Outputs: []ABIParam{{Name: "", Type: "uint8"}},
	},
	{
		Name: "buyTokens", Type: "function", StateMutability: "payable",
	},
	{
		Name: "approve", Type: "function", StateMutability: "nonpayable",
		Inputs: []ABIParam{
			{Name: "spender", Type: "address"},
			{Name: "amount", Type: "uint256"},
		},
		Outputs: []ABIParam{{Name: "", Type: "bool"}},
	},
}
