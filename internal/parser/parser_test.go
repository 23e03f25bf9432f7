package parser

import (
	"testing"
)

const tomatoEgg = `# 番茄炒蛋

番茄炒蛋是一道家常菜。

预估烹饪难度：★★

## 必备原料和工具

- 番茄
- 鸡蛋
- 食用油
- 炒锅
- 注：可用小番茄代替

## 计算

每次制作前需要确定计划做几份。一份正好够 2 个人食用。

- 番茄 2 个
- 鸡蛋：3 个
- 食用油：15 毫升
- 盐：2 克
- 份数 1

## 操作

1. 番茄洗净切块
2. 鸡蛋打散
- 热锅下油
- --
3. 翻炒均匀后出锅
`

func TestParse_CompleteRecipe(t *testing.T) {
	r, err := Parse([]byte(tomatoEgg), "dishes/vegetable_dish/番茄炒蛋.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.ID != "dishes/vegetable_dish/番茄炒蛋" {
		t.Errorf("id = %q", r.ID)
	}
	if r.Name != "番茄炒蛋" {
		t.Errorf("name = %q, want %q", r.Name, "番茄炒蛋")
	}
	if r.Description != "番茄炒蛋是一道家常菜。" {
		t.Errorf("description = %q", r.Description)
	}
	if r.Category != "素菜" {
		t.Errorf("category = %q, want %q", r.Category, "素菜")
	}
	if r.Difficulty != 2 {
		t.Errorf("difficulty = %d, want 2", r.Difficulty)
	}
	if r.Servings != 2 {
		t.Errorf("servings = %d, want 2", r.Servings)
	}
	if r.SourcePath != "dishes/vegetable_dish/番茄炒蛋.md" {
		t.Errorf("source_path = %q", r.SourcePath)
	}
}

func TestParse_IngredientMergeAndDedup(t *testing.T) {
	r, err := Parse([]byte(tomatoEgg), "dishes/vegetable_dish/番茄炒蛋.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	names := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		names = append(names, ing.Name)
	}
	want := []string{"番茄", "鸡蛋", "食用油", "盐"}
	if len(names) != len(want) {
		t.Fatalf("ingredients = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("ingredients[%d] = %q, want %q", i, names[i], want[i])
		}
	}

	// The materials pass ran first, so 番茄 keeps its bare mention and no
	// quantity even though the calculation section lists one.
	if r.Ingredients[0].Quantity != nil {
		t.Errorf("番茄 quantity = %v, want nil (materials mention wins)", *r.Ingredients[0].Quantity)
	}
	if r.Ingredients[0].TextQuantity != "- 番茄" {
		t.Errorf("番茄 text_quantity = %q", r.Ingredients[0].TextQuantity)
	}

	// 盐 only appears in the calculation section with a detailed amount.
	salt := r.Ingredients[3]
	if salt.Quantity == nil || *salt.Quantity != 2 {
		t.Errorf("盐 quantity = %v, want 2", salt.Quantity)
	}
	if salt.Unit == nil || *salt.Unit != "克" {
		t.Errorf("盐 unit = %v, want 克", salt.Unit)
	}
}

func TestParse_StepsRenumbered(t *testing.T) {
	r, err := Parse([]byte(tomatoEgg), "dishes/vegetable_dish/番茄炒蛋.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"番茄洗净切块", "鸡蛋打散", "热锅下油", "翻炒均匀后出锅"}
	if len(r.Steps) != len(want) {
		t.Fatalf("steps = %v, want %d entries", r.Steps, len(want))
	}
	for i, s := range r.Steps {
		if s.Step != i+1 {
			t.Errorf("steps[%d].Step = %d, want %d", i, s.Step, i+1)
		}
		if s.Description != want[i] {
			t.Errorf("steps[%d].Description = %q, want %q", i, s.Description, want[i])
		}
	}
}

func TestParse_Tags(t *testing.T) {
	r, err := Parse([]byte(tomatoEgg), "dishes/vegetable_dish/番茄炒蛋.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"素菜", "番茄炒蛋", "简单"}
	if len(r.Tags) != len(want) {
		t.Fatalf("tags = %v, want %v", r.Tags, want)
	}
	for i := range want {
		if r.Tags[i] != want[i] {
			t.Errorf("tags[%d] = %q, want %q", i, r.Tags[i], want[i])
		}
	}
}

func TestParse_StepNumberingIgnoresSourceLiterals(t *testing.T) {
	doc := "# 试验\n\n## 操作\n\n3. 切碎\n1. 搅拌\n"
	r, err := Parse([]byte(doc), "dishes/condiment/试验.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.Steps) != 2 {
		t.Fatalf("steps = %v", r.Steps)
	}
	if r.Steps[0].Step != 1 || r.Steps[0].Description != "切碎" {
		t.Errorf("steps[0] = %+v", r.Steps[0])
	}
	if r.Steps[1].Step != 2 || r.Steps[1].Description != "搅拌" {
		t.Errorf("steps[1] = %+v", r.Steps[1])
	}
}

func TestExtractDifficulty_CountsFilledStars(t *testing.T) {
	tests := []struct {
		content string
		want    int
	}{
		{"预估烹饪难度：★★★☆☆", 3},
		{"预估烹饪难度: ★", 1},
		{"预估烹饪难度：★★★★★", 5},
		{"没有难度标记", 1},
		{"预估烹饪难度：☆☆☆", 0},
	}
	for _, tt := range tests {
		if got := extractDifficulty(tt.content); got != tt.want {
			t.Errorf("extractDifficulty(%q) = %d, want %d", tt.content, got, tt.want)
		}
	}
}

func TestExtractServings_OrderedPatterns(t *testing.T) {
	tests := []struct {
		content string
		want    int
	}{
		{"一份正好够 3 个人", 3},
		{"这是 4 人份的量", 4},
		// Batch phrasing wins over portion phrasing.
		{"2 人份，但一份正好够 5 个人", 5},
		{"没有份量信息", 2},
	}
	for _, tt := range tests {
		if got := extractServings(tt.content); got != tt.want {
			t.Errorf("extractServings(%q) = %d, want %d", tt.content, got, tt.want)
		}
	}
}

func TestParse_ParentheticalStrippedFromMaterials(t *testing.T) {
	doc := "# 番茄炒蛋\n\n预估烹饪难度：★★\n\n## 必备原料和工具\n\n- 番茄（2个）\n\n## 计算\n\n- 鸡蛋：3 个\n\n## 操作\n\n- 打蛋\n- 炒番茄\n"
	r, err := Parse([]byte(doc), "dishes/vegetable_dish/番茄炒蛋.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Name != "番茄炒蛋" || r.Difficulty != 2 {
		t.Errorf("name/difficulty = %q/%d", r.Name, r.Difficulty)
	}
	if len(r.Ingredients) != 2 {
		t.Fatalf("ingredients = %+v", r.Ingredients)
	}
	if r.Ingredients[0].Name != "番茄" || r.Ingredients[0].Quantity != nil {
		t.Errorf("ingredients[0] = %+v, want bare 番茄", r.Ingredients[0])
	}
	egg := r.Ingredients[1]
	if egg.Name != "鸡蛋" || egg.Quantity == nil || *egg.Quantity != 3 || egg.Unit == nil || *egg.Unit != "个" {
		t.Errorf("ingredients[1] = %+v", egg)
	}
	if len(r.Steps) != 2 || r.Steps[0].Description != "打蛋" || r.Steps[1].Description != "炒番茄" {
		t.Errorf("steps = %+v", r.Steps)
	}
}

func TestParse_NoTitle(t *testing.T) {
	_, err := Parse([]byte("预估烹饪难度：★\n\n## 操作\n\n- 搅拌\n"), "dishes/drink/x.md")
	if err != ErrNoTitle {
		t.Fatalf("err = %v, want ErrNoTitle", err)
	}
}

func TestParse_DefaultsWhenMarkersAbsent(t *testing.T) {
	r, err := Parse([]byte("# 清水\n"), "dishes/drink/清水.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Difficulty != 1 {
		t.Errorf("difficulty = %d, want 1", r.Difficulty)
	}
	if r.Servings != 2 {
		t.Errorf("servings = %d, want 2", r.Servings)
	}
	if r.Description != "" {
		t.Errorf("description = %q, want empty", r.Description)
	}
	if r.Ingredients == nil || len(r.Ingredients) != 0 {
		t.Errorf("ingredients = %v, want empty non-nil slice", r.Ingredients)
	}
	if r.Steps == nil || len(r.Steps) != 0 {
		t.Errorf("steps = %v, want empty non-nil slice", r.Steps)
	}
}

func TestParse_Deterministic(t *testing.T) {
	a, err := Parse([]byte(tomatoEgg), "dishes/vegetable_dish/番茄炒蛋.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Parse([]byte(tomatoEgg), "dishes/vegetable_dish/番茄炒蛋.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.Ingredients) != len(b.Ingredients) || len(a.Steps) != len(b.Steps) {
		t.Errorf("repeated parses disagree: %v vs %v", a, b)
	}
	for i := range a.Ingredients {
		if a.Ingredients[i].Name != b.Ingredients[i].Name {
			t.Errorf("ingredient order differs at %d: %q vs %q", i, a.Ingredients[i].Name, b.Ingredients[i].Name)
		}
	}
}

func TestResolveCategory(t *testing.T) {
	tests := []struct {
		rel  string
		want string
	}{
		{"dishes/meat_dish/红烧肉.md", "荤菜"},
		{"dishes/soup/西红柿鸡蛋汤.md", "汤羹"},
		{"dishes/meat_dish/august/红烧肉.md", "荤菜"},
		{"dishes/unknown_dir/东西.md", "其他"},
		{"红烧肉.md", "其他"},
	}
	for _, tt := range tests {
		if got := resolveCategory(tt.rel); got != tt.want {
			t.Errorf("resolveCategory(%q) = %q, want %q", tt.rel, got, tt.want)
		}
	}
}
