package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/pantrymatch/backend/config"
	"github.com/pageza/pantrymatch/backend/internal/database"
	"github.com/pageza/pantrymatch/backend/internal/logging"
	"github.com/pageza/pantrymatch/backend/internal/models"
	"github.com/pageza/pantrymatch/backend/internal/service"
	"github.com/pageza/pantrymatch/backend/internal/types"
)

type sampleItem struct {
	name     string
	quantity string
	unit     string
}

type recipeSample struct {
	title        string
	description  string
	instructions string
	cookingTime  int
	prepTime     int
	calories     int
	difficulty   models.Difficulty
	cuisine      models.Cuisine
	vegetarian   bool
	glutenFree   bool
	ingredients  []sampleItem
}

var sampleRecipes = []recipeSample{
	{
		title:        "Spaghetti Carbonara",
		description:  "Roman pasta with eggs, cheese and guanciale",
		instructions: "Cook the pasta. Crisp the guanciale. Toss with eggs and pecorino off the heat.",
		cookingTime:  15,
		prepTime:     10,
		calories:     620,
		difficulty:   models.DifficultyMedium,
		cuisine:      models.CuisineItalian,
		ingredients:  []sampleItem{{"spaghetti", "400", "g"}, {"eggs", "4", ""}, {"pecorino", "80", "g"}, {"guanciale", "150", "g"}},
	},
	{
		title:        "Margherita Pizza",
		description:  "Tomato, mozzarella and basil on a thin crust",
		instructions: "Stretch the dough. Top with tomato and mozzarella. Bake very hot. Finish with basil.",
		cookingTime:  10,
		prepTime:     90,
		calories:     800,
		difficulty:   models.DifficultyHard,
		cuisine:      models.CuisineItalian,
		vegetarian:   true,
		ingredients:  []sampleItem{{"pizza dough", "1", "ball"}, {"tomatoes", "200", "g"}, {"mozzarella", "125", "g"}, {"basil", "6", "leaves"}},
	},
	{
		title:        "Pad Thai",
		description:  "Stir-fried rice noodles with tamarind and peanuts",
		instructions: "Soak the noodles. Stir-fry with egg and sauce. Top with peanuts and lime.",
		cookingTime:  15,
		prepTime:     20,
		calories:     550,
		difficulty:   models.DifficultyMedium,
		cuisine:      models.CuisineThai,
		glutenFree:   true,
		ingredients:  []sampleItem{{"rice noodles", "200", "g"}, {"eggs", "2", ""}, {"peanuts", "50", "g"}, {"tamarind paste", "2", "tbsp"}, {"lime", "1", ""}},
	},
	{
		title:        "Chana Masala",
		description:  "Chickpeas simmered in a spiced tomato gravy",
		instructions: "Fry onion with spices. Add tomatoes and chickpeas. Simmer until thick.",
		cookingTime:  30,
		prepTime:     10,
		calories:     420,
		difficulty:   models.DifficultyEasy,
		cuisine:      models.CuisineIndian,
		vegetarian:   true,
		glutenFree:   true,
		ingredients:  []sampleItem{{"chickpeas", "2", "cans"}, {"onion", "1", ""}, {"tomatoes", "400", "g"}, {"garam masala", "2", "tsp"}},
	},
	{
		title:        "Beef Tacos",
		description:  "Seasoned ground beef in corn tortillas",
		instructions: "Brown the beef with spices. Warm the tortillas. Fill and top with salsa.",
		cookingTime:  20,
		prepTime:     10,
		calories:     480,
		difficulty:   models.DifficultyEasy,
		cuisine:      models.CuisineMexican,
		glutenFree:   true,
		ingredients:  []sampleItem{{"ground beef", "500", "g"}, {"corn tortillas", "8", ""}, {"onion", "1", ""}, {"salsa", "150", "g"}},
	},
	{
		title:        "Miso Soup",
		description:  "Light dashi broth with tofu and wakame",
		instructions: "Heat the dashi. Whisk in miso off the boil. Add tofu and wakame.",
		cookingTime:  10,
		prepTime:     5,
		calories:     90,
		difficulty:   models.DifficultyEasy,
		cuisine:      models.CuisineJapanese,
		vegetarian:   true,
		ingredients:  []sampleItem{{"dashi", "1", "l"}, {"miso paste", "3", "tbsp"}, {"tofu", "200", "g"}, {"wakame", "5", "g"}},
	},
}

var sampleSubstitutions = []struct {
	ingredient, substitute string
	ratio                  float64
	notes                  string
}{
	{"guanciale", "pancetta", 1, "milder and leaner"},
	{"pecorino", "parmesan", 1, "less salty"},
	{"ground beef", "tofu", 1, "crumble and season well"},
}

func main() {
	username := flag.String("user", "dev", "Username embedded in the printed development token")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Environment.IsProduction() {
		log.Fatal("Refusing to seed a production database")
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	ctx := context.Background()
	recipes := service.NewRecipeService(db, logger)
	ingredients := service.NewIngredientService(db, logger)

	var count int64
	if err := db.Model(&models.Recipe{}).Count(&count).Error; err != nil {
		logger.Fatal("failed to count recipes", zap.Error(err))
	}
	if count > 0 {
		logger.Info("catalog already seeded", zap.Int64("recipes", count))
	} else {
		for _, sample := range sampleRecipes {
			recipe, err := recipes.CreateRecipe(ctx, toRequest(sample))
			if err != nil {
				logger.Fatal("failed to seed recipe", zap.String("title", sample.title), zap.Error(err))
			}
			logger.Info("seeded recipe", zap.String("id", recipe.ID.String()), zap.String("title", recipe.Title))
		}
		seedSubstitutions(ctx, ingredients, logger)
	}

	// Token issuance is only for local development and tests
	userID := uuid.New()
	token, err := service.NewAuthService(cfg.JWTSecret).GenerateToken(userID, *username)
	if err != nil {
		logger.Fatal("failed to generate token", zap.Error(err))
	}
	fmt.Printf("user_id: %s\nAuthorization: Bearer %s\n", userID, token)
}

func toRequest(sample recipeSample) *types.CreateRecipeRequest {
	items := make([]types.RecipeIngredientInput, len(sample.ingredients))
	for i, ing := range sample.ingredients {
		items[i] = types.RecipeIngredientInput{Name: ing.name, Quantity: ing.quantity, Unit: ing.unit}
	}
	return &types.CreateRecipeRequest{
		Title:              sample.title,
		Description:        sample.description,
		Instructions:       sample.instructions,
		CookingTime:        sample.cookingTime,
		PreparationTime:    sample.prepTime,
		CaloriesPerServing: sample.calories,
		Difficulty:         sample.difficulty,
		Cuisine:            sample.cuisine,
		IsVegetarian:       sample.vegetarian,
		IsGlutenFree:       sample.glutenFree,
		Ingredients:        items,
	}
}

func seedSubstitutions(ctx context.Context, ingredients *service.IngredientService, logger *zap.Logger) {
	for _, s := range sampleSubstitutions {
		names := []string{s.ingredient, s.substitute}
		found, err := ingredients.FindByNames(ctx, names)
		if err != nil {
			logger.Fatal("failed to look up ingredients", zap.Error(err))
		}

		from, ok := found[s.ingredient]
		if !ok {
			logger.Warn("substitution source not in catalog", zap.String("ingredient", s.ingredient))
			continue
		}
		to, ok := found[s.substitute]
		if !ok {
			created, err := ingredients.CreateIngredient(ctx, &types.IngredientRequest{Name: s.substitute})
			if err != nil && !errors.Is(err, service.ErrDuplicateIngredient) {
				logger.Fatal("failed to create ingredient", zap.String("name", s.substitute), zap.Error(err))
			}
			if created == nil {
				continue
			}
			to = *created
		}

		if _, err := ingredients.AddSubstitution(ctx, from.ID, &types.SubstitutionRequest{
			SubstituteID: to.ID,
			Ratio:        s.ratio,
			Notes:        s.notes,
		}); err != nil {
			logger.Fatal("failed to seed substitution", zap.String("ingredient", s.ingredient), zap.Error(err))
		}
	}
}
