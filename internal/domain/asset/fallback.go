package asset

// FallbackCatalog returns the embedded card list used when the remote
// catalog cannot be fetched. Kept in ascending suitability order.
func FallbackCatalog() []Asset {
	return []Asset{
		{ID: 1, Name: "Tesouro Selic", Type: "Renda Fixa", Suitability: 10, Return: 20, Safety: 100, Description: "Segurança máxima."},
		{ID: 2, Name: "CDB Banco", Type: "Renda Fixa", Suitability: 20, Return: 30, Safety: 90, Description: "Garantia FGC."},
		{ID: 3, Name: "Fundo DI", Type: "Fundo", Suitability: 25, Return: 35, Safety: 85, Description: "Conservador."},
		{ID: 4, Name: "LCI/LCA", Type: "Isento", Suitability: 30, Return: 40, Safety: 85, Description: "Isento de IR."},
		{ID: 5, Name: "Debênture", Type: "Crédito", Suitability: 35, Return: 45, Safety: 75, Description: "Dívida privada."},
		{ID: 6, Name: "Multimercado", Type: "Fundo", Suitability: 45, Return: 55, Safety: 65, Description: "Diversificado."},
		{ID: 7, Name: "FII Papel", Type: "Imobiliário", Suitability: 50, Return: 60, Safety: 60, Description: "Recebíveis."},
		{ID: 8, Name: "FII Tijolo", Type: "Imobiliário", Suitability: 55, Return: 65, Safety: 55, Description: "Imóveis físicos."},
		{ID: 9, Name: "ETF S&P500", Type: "Internacional", Suitability: 60, Return: 70, Safety: 50, Description: "Bolsa EUA."},
		{ID: 10, Name: "Blue Chips", Type: "Ações", Suitability: 65, Return: 75, Safety: 45, Description: "Grandes empresas."},
		{ID: 11, Name: "Small Caps", Type: "Ações", Suitability: 75, Return: 85, Safety: 30, Description: "Alto crescimento."},
		{ID: 12, Name: "Dólar Futuro", Type: "Derivativos", Suitability: 80, Return: 80, Safety: 35, Description: "Câmbio."},
		{ID: 13, Name: "Bitcoin", Type: "Cripto", Suitability: 90, Return: 95, Safety: 10, Description: "Ouro digital."},
		{ID: 14, Name: "Altcoins", Type: "Cripto", Suitability: 95, Return: 100, Safety: 5, Description: "Alto risco."},
		{ID: 15, Name: "Opções", Type: "Derivativos", Suitability: 100, Return: 100, Safety: 0, Description: "Alavancagem."},
	}
}
