package library

// Curated prompts organized by category. The negative prompts matter as much
// as the positives for clean vectorization.
var promptLibrary = map[string]Category{
	"vector_logos": {
		Name:        "Vector Logos",
		Description: "Logo designs optimized for SVG conversion",
		SVGPreset:   "logo",
		Prompts: []Prompt{
			{
				ID:             "tech_logo",
				Name:           "Tech Company Logo",
				Prompt:         "minimalist tech company logo, geometric shapes, HIGH CONTRAST, bold solid colors on pure white background, flat vector design, clean sharp edges, no gradients, no shadows, professional corporate identity",
				NegativePrompt: "gradients, shadows, soft edges, photorealistic, 3d, texture, noise, blurry, complex details",
			},
			{
				ID:             "startup_logo",
				Name:           "Startup Logo",
				Prompt:         "modern startup logo, abstract geometric symbol, HIGH CONTRAST, 2-3 bold colors maximum, pure white background, flat design, sharp clean lines, minimalist, scalable vector style",
				NegativePrompt: "gradients, shadows, realistic, complex, detailed, textured, 3d effects, soft edges",
			},
			{
				ID:             "medical_logo",
				Name:           "Medical/Healthcare Logo",
				Prompt:         "professional medical healthcare logo, clean geometric design, HIGH CONTRAST, blue and white color scheme, pure white background, flat vector style, sharp edges, minimalist symbol, corporate medical identity",
				NegativePrompt: "gradients, shadows, photorealistic, complex details, soft edges, textured",
			},
			{
				ID:             "eco_logo",
				Name:           "Eco/Nature Logo",
				Prompt:         "eco-friendly nature logo, leaf or tree symbol, HIGH CONTRAST, green and white, pure white background, flat vector design, clean geometric shapes, minimalist environmental branding",
				NegativePrompt: "gradients, shadows, realistic leaves, complex details, photorealistic, 3d",
			},
			{
				ID:             "finance_logo",
				Name:           "Finance Logo",
				Prompt:         "professional finance banking logo, abstract geometric symbol, HIGH CONTRAST, navy blue and gold, pure white background, flat vector design, sharp clean lines, trustworthy corporate identity",
				NegativePrompt: "gradients, shadows, complex details, photorealistic, 3d effects",
			},
		},
	},
	"vector_icons": {
		Name:        "Vector Icons",
		Description: "Simple icons for UI/UX and applications",
		SVGPreset:   "logo",
		Prompts: []Prompt{
			{
				ID:             "app_icon",
				Name:           "App Icon",
				Prompt:         "simple app icon, single bold symbol, HIGH CONTRAST, solid flat color on white background, clean geometric shape, minimal design, vector style, sharp edges",
				NegativePrompt: "gradients, shadows, realistic, detailed, textured, 3d, complex",
			},
			{
				ID:             "ui_icon_set",
				Name:           "UI Icon",
				Prompt:         "UI interface icon, simple geometric symbol, HIGH CONTRAST, single solid color, white background, flat design, clean lines, pixel-perfect vector style",
				NegativePrompt: "gradients, shadows, realistic, complex, detailed, 3d effects",
			},
			{
				ID:             "emoji_style",
				Name:           "Emoji Style Icon",
				Prompt:         "cute emoji style icon, simple round design, HIGH CONTRAST, bold flat colors, white background, cartoon vector style, clean outlines, friendly expression",
				NegativePrompt: "gradients, shadows, realistic, complex shading, 3d, photorealistic",
			},
		},
	},
	"vector_illustrations": {
		Name:        "Vector Illustrations",
		Description: "Flat illustrations suitable for vectorization",
		SVGPreset:   "default",
		Prompts: []Prompt{
			{
				ID:             "flat_character",
				Name:           "Flat Character",
				Prompt:         "flat design character illustration, simple geometric shapes, HIGH CONTRAST, bold distinct colors, solid color fills, white background, clean vector art style, no gradients, cartoon style",
				NegativePrompt: "gradients, shadows, realistic, photorealistic, complex shading, soft edges, 3d",
			},
			{
				ID:             "isometric_scene",
				Name:           "Isometric Scene",
				Prompt:         "isometric illustration, geometric buildings and objects, HIGH CONTRAST, flat bold colors, clean sharp edges, white background, vector art style, no gradients, architectural diagram style",
				NegativePrompt: "gradients, shadows, realistic, complex details, soft lighting, 3d render",
			},
			{
				ID:             "infographic",
				Name:           "Infographic Element",
				Prompt:         "infographic illustration element, simple geometric shapes, HIGH CONTRAST, bold flat colors, white background, clean vector design, data visualization style, sharp edges",
				NegativePrompt: "gradients, shadows, photorealistic, complex details, soft edges",
			},
			{
				ID:             "spot_illustration",
				Name:           "Spot Illustration",
				Prompt:         "editorial spot illustration, simple bold shapes, HIGH CONTRAST, limited color palette 3-4 colors, white background, flat vector style, clean geometric design",
				NegativePrompt: "gradients, shadows, photorealistic, complex shading, detailed textures",
			},
		},
	},
	"vector_patterns": {
		Name:        "Vector Patterns",
		Description: "Seamless patterns for backgrounds and textures",
		SVGPreset:   "simplified",
		Prompts: []Prompt{
			{
				ID:             "geometric_pattern",
				Name:           "Geometric Pattern",
				Prompt:         "seamless geometric pattern, repeating shapes, HIGH CONTRAST, bold two-tone colors, flat design, clean sharp edges, vector tile pattern, no gradients",
				NegativePrompt: "gradients, shadows, realistic, complex, soft edges, 3d",
			},
			{
				ID:             "abstract_pattern",
				Name:           "Abstract Pattern",
				Prompt:         "abstract seamless pattern, organic shapes, HIGH CONTRAST, limited color palette, flat bold colors, vector art style, clean edges, repeating design",
				NegativePrompt: "gradients, shadows, photorealistic, complex details, soft blending",
			},
		},
	},
	"vector_symbols": {
		Name:        "Vector Symbols",
		Description: "Abstract symbols and marks",
		SVGPreset:   "logo",
		Prompts: []Prompt{
			{
				ID:             "abstract_mark",
				Name:           "Abstract Mark",
				Prompt:         "abstract geometric symbol, bold distinctive shape, HIGH CONTRAST, single solid color on white background, flat vector design, clean sharp edges, memorable brand mark",
				NegativePrompt: "gradients, shadows, realistic, complex, detailed, textured, 3d",
			},
			{
				ID:             "monogram",
				Name:           "Monogram",
				Prompt:         "elegant monogram letter design, intertwined letters, HIGH CONTRAST, single bold color on white, flat vector style, clean geometric letterforms, sharp edges",
				NegativePrompt: "gradients, shadows, ornate details, 3d effects, soft edges",
			},
			{
				ID:             "badge_emblem",
				Name:           "Badge/Emblem",
				Prompt:         "circular badge emblem design, bold geometric elements, HIGH CONTRAST, 2-3 colors maximum, white background, flat vector style, clean sharp lines, vintage badge aesthetic",
				NegativePrompt: "gradients, shadows, photorealistic, complex details, soft edges, 3d",
			},
		},
	},
	"photorealistic": {
		Name:        "Photorealistic",
		Description: "High-quality photorealistic images (not optimized for SVG)",
		SVGPreset:   "detailed",
		Prompts: []Prompt{
			{
				ID:             "portrait",
				Name:           "Portrait",
				Prompt:         "professional portrait photograph, natural lighting, high detail, sharp focus, studio quality",
				NegativePrompt: "blurry, distorted, artificial, cartoon",
			},
			{
				ID:             "landscape",
				Name:           "Landscape",
				Prompt:         "stunning landscape photograph, golden hour lighting, high dynamic range, professional photography",
				NegativePrompt: "blurry, oversaturated, artificial",
			},
			{
				ID:             "product",
				Name:           "Product Shot",
				Prompt:         "professional product photography, clean white background, studio lighting, high detail, commercial quality",
				NegativePrompt: "blurry, distorted, messy background",
			},
		},
	},
}

// Vector-optimized templates. Each carries a {subject} slot.
var vectorTemplates = map[string]Template{
	"logo_template": {
		Name:            "Logo Template",
		Description:     "Optimized for clean logo SVG output",
		Template:        "{subject}, minimalist logo design, HIGH CONTRAST, bold solid colors, pure white background, flat vector style, clean sharp edges, no gradients, no shadows, professional corporate identity, geometric shapes",
		Negative:        "gradients, shadows, soft edges, photorealistic, 3d, texture, noise, blurry, complex details, realistic shading",
		SVGPreset:       "logo",
		RecommendedSize: [2]int{512, 512},
	},
	"icon_template": {
		Name:            "Icon Template",
		Description:     "Optimized for simple icon SVG output",
		Template:        "{subject}, simple icon design, HIGH CONTRAST, single bold color, white background, flat design, clean geometric shape, minimal, vector style, sharp edges",
		Negative:        "gradients, shadows, realistic, detailed, textured, 3d, complex, photorealistic",
		SVGPreset:       "logo",
		RecommendedSize: [2]int{256, 256},
	},
	"illustration_template": {
		Name:            "Illustration Template",
		Description:     "Optimized for flat illustration SVG output",
		Template:        "{subject}, flat vector illustration, HIGH CONTRAST, bold distinct colors, solid color fills, white background, clean edges, cartoon style, no gradients, graphic design style",
		Negative:        "gradients, shadows, realistic, photorealistic, complex shading, soft edges, 3d, detailed textures",
		SVGPreset:       "default",
		RecommendedSize: [2]int{1024, 1024},
	},
	"silhouette_template": {
		Name:            "Silhouette Template",
		Description:     "Perfect for single-color silhouette SVG",
		Template:        "{subject}, bold black silhouette, HIGH CONTRAST, solid black shape on pure white background, clean sharp edges, no details inside, flat vector style",
		Negative:        "gradients, shading, gray tones, details, texture, 3d, realistic",
		SVGPreset:       "bw",
		RecommendedSize: [2]int{512, 512},
	},
	"badge_template": {
		Name:            "Badge Template",
		Description:     "Optimized for badge/emblem SVG output",
		Template:        "{subject}, circular badge emblem, HIGH CONTRAST, 2-3 bold colors, white background, flat vector design, clean geometric shapes, vintage badge style, sharp edges",
		Negative:        "gradients, shadows, photorealistic, complex details, soft edges, 3d effects, realistic textures",
		SVGPreset:       "logo",
		RecommendedSize: [2]int{512, 512},
	},
	"infographic_template": {
		Name:            "Infographic Template",
		Description:     "Optimized for data visualization elements",
		Template:        "{subject}, infographic design element, HIGH CONTRAST, bold flat colors, white background, clean vector style, geometric shapes, data visualization, sharp clean edges",
		Negative:        "gradients, shadows, photorealistic, complex details, soft edges, 3d rendering",
		SVGPreset:       "simplified",
		RecommendedSize: [2]int{800, 600},
	},
}
