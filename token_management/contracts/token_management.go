package contracts

type ITokenManagement interface {
	UsedTokens(inputToken int, outputToken int)
	DisplayTokens(chatProviderName string, promptProfile string, requests int)
	GetCurrentTokenUsage() (total int, input int, output int)
}
