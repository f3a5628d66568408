package catalog

// templates is the build-time catalog. Order determines presentation order.
var templates = []Template{
	{
		ID:            "product-description",
		Name:          "Product Description",
		Category:      "ecommerce",
		Complexity:    ComplexityBasic,
		EstimatedTime: "2 min",
		Renderer:      RendererStandard,
		Fields: []Field{
			{ID: "productName", Label: "Product name", Type: FieldText, Required: true, MaxLength: 120},
			{ID: "productFeatures", Label: "Key features", Type: FieldTextarea, Required: true, MaxLength: 1000},
			{ID: "targetCustomer", Label: "Target customer", Type: FieldText, Required: false, MaxLength: 200},
			{ID: "tone", Label: "Tone", Type: FieldSelect, Required: true,
				Options: []string{"Professional", "Playful", "Luxurious", "Technical", OtherSentinel}},
		},
		Prompt: `Write a persuasive product description for {productName}.

Key features:
{productFeatures}

Target customer: {targetCustomer}
Tone: {tone}
{brandVoiceInstructions}
{personaInstructions}
Return the description as clean HTML using <h2>, <p> and <ul> tags only.`,
	},
	{
		ID:            "email-campaign",
		Name:          "Email Campaign",
		Category:      "email",
		Complexity:    ComplexityStandard,
		EstimatedTime: "5 min",
		Renderer:      RendererEmailPreview,
		Fields: []Field{
			{ID: "campaignGoal", Label: "Campaign goal", Type: FieldSelect, Required: true,
				Options: []string{"Product launch", "Newsletter", "Promotion", "Re-engagement", OtherSentinel}},
			{ID: "subjectHints", Label: "Subject line hints", Type: FieldText, Required: false, MaxLength: 200},
			{ID: "mainMessage", Label: "Main message", Type: FieldTextarea, Required: true, MaxLength: 2000},
			{ID: "callToAction", Label: "Call to action", Type: FieldText, Required: true, MaxLength: 100},
		},
		Prompt: `Write a marketing email for this campaign.

Goal: {campaignGoal}
Subject line hints: {subjectHints}
Main message:
{mainMessage}

Call to action: {callToAction}
{brandVoiceInstructions}
{personaInstructions}
Return the email as HTML with a <h1> subject line followed by body paragraphs and a closing call-to-action paragraph.`,
	},
	{
		ID:            "social-media-post",
		Name:          "Social Media Post",
		Category:      "social",
		Complexity:    ComplexityBasic,
		EstimatedTime: "1 min",
		Renderer:      RendererStandard,
		Fields: []Field{
			{ID: "channel", Label: "Channel", Type: FieldSelect, Required: true,
				Options: []string{"LinkedIn", "X", "Instagram", "Facebook", OtherSentinel}},
			{ID: "topic", Label: "Topic", Type: FieldTextarea, Required: true, MaxLength: 500},
			{ID: "hashtags", Label: "Hashtags", Type: FieldText, Required: false, MaxLength: 150},
		},
		Prompt: `Write a social media post for {channel}.

Topic:
{topic}

Suggested hashtags: {hashtags}
{brandVoiceInstructions}
{personaInstructions}
Return the post as HTML paragraphs. Match the conventions and length norms of {channel}.`,
	},
	{
		ID:            "tone-shift",
		Name:          "Tone Shift",
		Category:      "rewriting",
		Complexity:    ComplexityBasic,
		EstimatedTime: "1 min",
		Renderer:      RendererStandard,
		Fields: []Field{
			{ID: "originalText", Label: "Original text", Type: FieldTextarea, Required: true, MaxLength: 5000},
			{ID: "targetTone", Label: "Target tone", Type: FieldSelect, Required: true,
				Options: []string{"Professional", "Friendly", "Urgent", "Empathetic", "Confident", OtherSentinel}},
		},
		Prompt: `Rewrite the following text in a {targetTone} tone. Preserve the meaning and approximate length.

Original text:
{originalText}
{brandVoiceInstructions}
{personaInstructions}
Return only the rewritten text as HTML paragraphs.`,
	},
	{
		ID:            "channel-rewrite",
		Name:          "Channel Rewrite",
		Category:      "rewriting",
		Complexity:    ComplexityStandard,
		EstimatedTime: "2 min",
		Renderer:      RendererStandard,
		Fields: []Field{
			{ID: "originalText", Label: "Original text", Type: FieldTextarea, Required: true, MaxLength: 5000},
			{ID: "targetChannel", Label: "Target channel", Type: FieldSelect, Required: true,
				Options: []string{"Landing page", "Email", "LinkedIn", "Print ad", OtherSentinel}},
		},
		Prompt: `Adapt the following copy for {targetChannel}, keeping the core message intact while matching the channel's format and tone conventions.

Original text:
{originalText}
{brandVoiceInstructions}
{personaInstructions}
Return the adapted copy as clean HTML.`,
	},
	{
		ID:            "landing-page-hero",
		Name:          "Landing Page Hero",
		Category:      "web",
		Complexity:    ComplexityStandard,
		EstimatedTime: "3 min",
		Renderer:      RendererStandard,
		Fields: []Field{
			{ID: "productName", Label: "Product name", Type: FieldText, Required: true, MaxLength: 120},
			{ID: "valueProposition", Label: "Value proposition", Type: FieldTextarea, Required: true, MaxLength: 800},
			{ID: "primaryCTA", Label: "Primary call to action", Type: FieldText, Required: true, MaxLength: 60},
		},
		Prompt: `Write landing page hero copy for {productName}.

Value proposition:
{valueProposition}

Primary call to action: {primaryCTA}
{brandVoiceInstructions}
{personaInstructions}
Return HTML with an <h1> headline, an <h2> subheadline, and a short supporting <p>.`,
	},
	{
		ID:            "brand-messaging",
		Name:          "Brand Messaging Framework",
		Category:      "strategy",
		Complexity:    ComplexityStrategic,
		EstimatedTime: "15 min",
		Renderer:      RendererBrandWizard,
		Fields: []Field{
			{ID: "brandName", Label: "Brand name", Type: FieldText, Required: true, MaxLength: 120},
			{ID: "industry", Label: "Industry", Type: FieldText, Required: true, MaxLength: 120},
			{ID: "primaryAudience", Label: "Primary audience", Type: FieldText, Required: true, MaxLength: 200},
			{ID: "keyProblem", Label: "Key problem you solve", Type: FieldTextarea, Required: true, MaxLength: 1000},
			{ID: "differentiators", Label: "Differentiators", Type: FieldTextarea, Required: true, MaxLength: 1000},
			{ID: "tonePreference", Label: "Tone preference", Type: FieldSelect, Required: true,
				Options: []string{"Professional", "Bold", "Warm", "Visionary", OtherSentinel}},
		},
		Steps: [][]string{
			{"brandName", "industry", "primaryAudience"},
			{"keyProblem", "differentiators", "tonePreference"},
		},
		Prompt: `Develop a complete brand messaging framework for {brandName}, a company in the {industry} space.

Primary audience: {primaryAudience}

Key problem they solve:
{keyProblem}

Differentiators:
{differentiators}

Preferred tone: {tonePreference}
{brandVoiceInstructions}
{personaInstructions}
Produce, as structured HTML with <h2> section headings:
1. Positioning statement
2. Value proposition
3. Three message pillars, each with a supporting proof point
4. Elevator pitch (under 60 words)
5. Tagline options (three)`,
	},
}
