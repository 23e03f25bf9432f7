package mcpserver

// RecipeFormatContract documents the Markdown conventions the extraction
// engine recognizes. LLM consumers should follow it when authoring recipe
// documents so extraction produces complete records.
const RecipeFormatContract = `# Ladle Recipe Document Format

Recipe documents are plain Markdown files organized by category directory
(e.g. ` + "`meat_dish/hongshaorou.md`" + `). Extraction amounts to pattern matching
against the conventions below; unrecognized parts degrade to defaults
instead of failing.

## Structure

` + "```" + `markdown
# 红烧肉

一段描述文字，紧跟在标题后的第一个自然段。

预估烹饪难度：★★★☆☆

一份正好够 2 个人。

## 必备原料和工具

- 五花肉
- 冰糖（可选）
- 注：这一行会被忽略

## 计算

- 五花肉：500 克
- 冰糖：30 克

## 操作

- 五花肉切块
- 焯水后捞出
1. 编号格式也可以
` + "```" + `

## Rules

1. **The ` + "`# title`" + ` heading is required.** A document without one is
   dropped entirely. Leading blank lines before it are tolerated.
2. **Difficulty** is the count of ★ after ` + "`预估烹饪难度：`" + `; ☆ pads the
   scale. Without the label the recipe defaults to difficulty 1.
3. **Servings** come from ` + "`一份正好够 N 个人`" + ` or ` + "`N 人份`" + ` (first match
   wins); default is 2.
4. **Sections** are introduced by ` + "`## 必备原料和工具`" + `, ` + "`## 计算`" + `, and
   ` + "`## 操作`" + ` and run until the next ` + "`##`" + ` heading.
5. **Bullets** may use ` + "`-`" + `, ` + "`*`" + `, or ` + "`+`" + `. Step lists may also use
   ` + "`N.`" + ` numbering, but step numbers are reassigned from 1 in document
   order regardless of the literals used.
6. **Calculation lines** use ` + "`名称：数量 单位`" + ` (either colon glyph). Lines
   naming tools or cookware (锅、盆、刀…) are ignored, as are ` + "`份数`" + `
   summary lines. Avoid a bare ` + "`总量：`" + ` line; it parses as an
   ingredient named 总量.
7. **Duplicate ingredients** keep their first mention: a bare entry in the
   materials section shadows a detailed entry in the calculation section.
8. **Encoding** is UTF-8; file names use English and forward slashes,
   content is usually Chinese.
`
