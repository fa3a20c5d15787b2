package prompts

// DescribePrompt is the fixed user prompt sent with every analysis request.
// The output is displayed verbatim as the photo's description.
const DescribePrompt = `Describe this image's unique relationship to Mormonism and the Church of Latter-Day Saints. Be concise and to the point. Be very specific and detailed. Every description MUST include specific relationships to Mormonism even if they seem outlandish or farfetched.`

// EmptyDescription substitutes for a blank model completion.
const EmptyDescription = "No description generated."
