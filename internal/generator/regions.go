package generator

import "meal-planner/internal/meal"

// RegionalConfig localizes the prompt: where the user shops and what is in
// season there.
type RegionalConfig struct {
	DisplayName         string
	Supermarkets        string
	SeasonalIngredients map[meal.Season]string
}

var regionalConfigs = map[string]RegionalConfig{
	"UK": {
		DisplayName:  "the UK",
		Supermarkets: "Tesco, Sainsbury's, Aldi, Lidl, Co-op, Asda, Morrisons",
		SeasonalIngredients: map[meal.Season]string{
			meal.SeasonWinter: "Root vegetables (parsnips, carrots, swede, turnip, celeriac), brassicas (cabbage, kale, Brussels sprouts, cauliflower, broccoli), leeks, onions, potatoes, beetroot, beef, lamb, game (venison, pheasant), smoked fish (haddock, salmon), mussels, stored apples and pears",
			meal.SeasonSpring: "Early greens, spring onions, radishes, rhubarb, wild garlic, asparagus (late spring), lamb, trout, crab",
			meal.SeasonSummer: "Soft fruits (strawberries, raspberries, blackcurrants), broad beans, peas, courgettes, tomatoes, lettuce, cucumber, new potatoes, salmon, mackerel",
			meal.SeasonAutumn: "Apples, pears, plums, blackberries, squash, pumpkin, mushrooms, sweetcorn, game birds, venison, mussels",
		},
	},
	"IE": {
		DisplayName:  "Ireland",
		Supermarkets: "SuperValu, Tesco, Lidl, Aldi, Dunnes Stores",
		SeasonalIngredients: map[meal.Season]string{
			meal.SeasonWinter: "Root vegetables (parsnips, carrots, turnip, celeriac), cabbage, kale, Brussels sprouts, cauliflower, leeks, potatoes, beetroot, Irish beef, lamb, game, smoked fish, mussels, apples",
			meal.SeasonSpring: "Early greens, spring onions, radishes, rhubarb, wild garlic, asparagus, lamb, salmon, crab",
			meal.SeasonSummer: "Strawberries, raspberries, broad beans, peas, courgettes, tomatoes, lettuce, new potatoes, salmon, mackerel",
			meal.SeasonAutumn: "Apples, blackberries, squash, pumpkin, mushrooms, sweetcorn, game birds, venison, mussels",
		},
	},
	"US": {
		DisplayName:  "the US",
		Supermarkets: "Whole Foods, Trader Joe's, Kroger, Safeway, Walmart, local farmers markets",
		SeasonalIngredients: map[meal.Season]string{
			meal.SeasonWinter: "Root vegetables (carrots, parsnips, turnips, sweet potatoes), winter squash, kale, Brussels sprouts, cabbage, citrus fruits (oranges, grapefruit), pomegranates, persimmons",
			meal.SeasonSpring: "Asparagus, peas, radishes, spring onions, strawberries, rhubarb, artichokes, fava beans, spring lamb",
			meal.SeasonSummer: "Tomatoes, corn, zucchini, bell peppers, eggplant, peaches, berries, melons, stone fruits, green beans, summer squash",
			meal.SeasonAutumn: "Apples, pears, pumpkins, winter squash, Brussels sprouts, sweet potatoes, cranberries, figs, grapes",
		},
	},
	"CA": {
		DisplayName:  "Canada",
		Supermarkets: "Loblaws, Sobeys, Metro, Whole Foods, local farmers markets",
		SeasonalIngredients: map[meal.Season]string{
			meal.SeasonWinter: "Root vegetables (carrots, parsnips, turnips, beets), winter squash, cabbage, kale, stored apples, Canadian beef, pork, game meats",
			meal.SeasonSpring: "Asparagus, rhubarb, fiddleheads, spring greens, radishes, maple syrup (early spring), lamb",
			meal.SeasonSummer: "Berries (strawberries, blueberries, raspberries), tomatoes, corn, zucchini, bell peppers, peaches, cherries, green beans",
			meal.SeasonAutumn: "Apples, pears, pumpkins, squash, Brussels sprouts, cranberries, wild mushrooms, game meats",
		},
	},
}

// regionFor returns the regional config for a country code, falling back to
// the UK when the code is unknown or empty.
func regionFor(countryCode string) RegionalConfig {
	if cfg, ok := regionalConfigs[countryCode]; ok {
		return cfg
	}
	return regionalConfigs["UK"]
}
