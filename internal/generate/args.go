package generate

import "strconv"

// BuildArgs constructs the external tool's argument vector. The order is
// deterministic: fixed flags first, then the conditional ones in declaration
// order, then one flag pair per adapter.
func BuildArgs(req *Request, width, height int, outputPath string) []string {
	args := []string{
		"-p", req.Prompt,
		"-W", strconv.Itoa(width),
		"-H", strconv.Itoa(height),
		"-s", strconv.Itoa(req.Steps),
		"-o", outputPath,
		"--no-progress",
	}

	if req.NegativePrompt != "" {
		args = append(args, "--negative-prompt", req.NegativePrompt)
	}
	if req.Seed != nil {
		args = append(args, "--seed", strconv.FormatInt(*req.Seed, 10))
	}
	if req.SVG {
		args = append(args, "--svg", "--svg-preset", req.SVGPreset)
	}
	for _, lora := range req.Loras {
		args = append(args, "--lora", lora.Path)
		if lora.Scale != nil {
			args = append(args, "--lora-scale", strconv.FormatFloat(*lora.Scale, 'g', -1, 64))
		}
	}
	return args
}
