package relevance

// Fixed vocabularies used by the scoring heuristics. All entries are
// lowercase; inputs are lowercased before matching. The lists mix English and
// Russian terms because HH.ru vacancies routinely use both.

// experienceSignals mark a vacancy description as actually stating an
// experience requirement.
var experienceSignals = []string{
	"experience",
	"project",
	"developed",
	"built",
	"maintained",
	"опыт",
	"проект",
	"разработка",
	"разрабатывал",
	"лет работы",
}

// technologies is the fixed set of common technology names extracted from
// vacancy descriptions and matched against resume experience text.
var technologies = []string{
	"python",
	"java",
	"javascript",
	"typescript",
	"react",
	"vue",
	"angular",
	"node.js",
	"django",
	"sql",
	"postgresql",
	"mysql",
	"mongodb",
	"redis",
	"docker",
	"kubernetes",
	"linux",
	"aws",
	"git",
	"figma",
	"1c",
}

// roleKeywords are the role words compared between vacancy and resume titles.
var roleKeywords = []string{
	"developer",
	"engineer",
	"manager",
	"designer",
	"analyst",
	"tester",
	"architect",
	"разработчик",
	"инженер",
	"менеджер",
	"дизайнер",
	"аналитик",
	"тестировщик",
	"программист",
	"архитектор",
}
