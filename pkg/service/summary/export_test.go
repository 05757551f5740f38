package summary

// BuildPrompt exposes buildPrompt for tests
var BuildPrompt = buildPrompt
