// Copyright 2025 Manhaj Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Command searcher is a self-contained demo. On first run it seeds a small
// bilingual catalog into ./catalog_db, then routes the query given on the
// command line.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/manhaj/coursesearch"
	"github.com/manhaj/coursesearch/core"
)

var sampleCatalog = []*core.CatalogEntry{
	{
		Title:       "Python for Beginners",
		Category:    "Programming",
		Level:       core.LevelBeginner,
		Skills:      "python, variables, loops, functions",
		Description: "Start programming from zero with Python.",
		Instructor:  "Sara Adel",
	},
	{
		Title:       "Advanced Python",
		Category:    "Programming",
		Level:       core.LevelAdvanced,
		Skills:      "python, decorators, generators, concurrency",
		Description: "Deep dive into Python internals and idioms.",
		Instructor:  "Sara Adel",
	},
	{
		Title:       "تعلم جافاسكريبت",
		Category:    "تطوير الويب",
		Level:       core.LevelBeginner,
		Skills:      "javascript, dom, es6",
		Description: "أساسيات جافاسكريبت لبناء مواقع تفاعلية.",
		Instructor:  "Omar Khaled",
	},
	{
		Title:       "Web Development Bootcamp",
		Category:    "Web Development",
		Level:       core.LevelIntermediate,
		Skills:      "html, css, javascript, react",
		Description: "Build and deploy full websites end to end.",
		Instructor:  "Omar Khaled",
	},
	{
		Title:       "تحليل البيانات",
		Category:    "علوم البيانات",
		Level:       core.LevelIntermediate,
		Skills:      "data, pandas, sql, visualization",
		Description: "تحليل البيانات باستخدام بايثون وقواعد البيانات.",
		Instructor:  "Huda Mansour",
	},
	{
		Title:       "Machine Learning Fundamentals",
		Category:    "AI",
		Level:       core.LevelIntermediate,
		Skills:      "machine learning, regression, classification",
		Description: "Core machine learning concepts with hands-on projects.",
		Instructor:  "Huda Mansour",
	},
	{
		Title:       "Deep Learning",
		Category:    "AI",
		Level:       core.LevelAdvanced,
		Skills:      "neural networks, pytorch, computer vision",
		Description: "Neural networks from perceptrons to transformers.",
		Instructor:  "Huda Mansour",
	},
	{
		Title:       "SQL للمبتدئين",
		Category:    "علوم البيانات",
		Level:       core.LevelBeginner,
		Skills:      "sql, queries, joins",
		Description: "التعامل مع قواعد البيانات وكتابة الاستعلامات.",
		Instructor:  "Tarek Nabil",
	},
	{
		Title:       "UI/UX Design",
		Category:    "Design",
		Level:       core.LevelBeginner,
		Skills:      "figma, wireframes, prototyping",
		Description: "Design user interfaces people actually enjoy.",
		Instructor:  "Lina Fares",
	},
	{
		Title:       "DevOps Essentials",
		Category:    "Infrastructure",
		Level:       core.LevelIntermediate,
		Skills:      "docker, kubernetes, ci/cd",
		Description: "Ship software reliably with modern tooling.",
		Instructor:  "Tarek Nabil",
	},
}

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

func main() {
	engine, err := coursesearch.NewEngine("./catalog_db")
	if err != nil {
		panic(err)
	}
	defer engine.Close()

	ctx := context.Background()

	entries, err := engine.CatalogRepository().ListEntries(ctx)
	if err != nil {
		panic(err)
	}
	if len(entries) == 0 {
		if _, err := engine.CatalogRepository().AddEntries(ctx, sampleCatalog...); err != nil {
			panic(err)
		}
		count, err := engine.EmbedPending(ctx)
		if err != nil {
			panic(err)
		}
		fmt.Printf("Seeded %d sample courses (%d embedded)\n", len(sampleCatalog), count)
	}

	query := "كورس بايثون للمبتدئين"
	if len(os.Args) > 1 {
		query = strings.Join(os.Args[1:], " ")
	}

	decision, err := engine.Route(ctx, query)
	if err != nil {
		panic(err)
	}

	fmt.Printf("status=%s route=%s level_mode=%s\n", decision.Status, decision.Route, decision.LevelMode)
	if decision.Status == core.StatusNoMatch {
		fmt.Printf("no match: %s\n", decision.Reason)
		return
	}

	for _, bucket := range []struct {
		name    string
		results []*core.CandidateResult
	}{
		{"Beginner", decision.Results.Beginner},
		{"Intermediate", decision.Results.Intermediate},
		{"Advanced", decision.Results.Advanced},
	} {
		for _, hit := range bucket.results {
			fmt.Printf("%s: '%s' (%s)[%0.3f]\n", bucket.name, hit.Entry.Title, hit.Entry.Category, hit.Score)
		}
	}
}
