package dialogue

// Response strings and keyword sets are hand-authored per language for the
// City General Hospital receptionist demo. Keywords are matched against
// lowercased input, so Latin-script keywords must be lowercase here.

var english = &Table{
	Lang:     "en",
	Locale:   "en-US",
	Welcome:  "Welcome to City General Hospital. Tap the microphone to start.",
	Fallback: "I didn't quite catch that. Could you say it again?",
	Emergency: Rule{
		Topic:    "emergency",
		Keywords: []string{"emergency", "pain", "blood"},
		Response: "Alert. Please hang up and dial 911 immediately. This sounds like a medical emergency.",
	},
	Rules: []Rule{
		{
			Topic:    "booking",
			Keywords: []string{"appointment", "book", "schedule"},
			Response: "I can help with that. Are you a new patient or returning?",
		},
		{
			Topic:    "cardiology",
			Keywords: []string{"cardiology", "heart"},
			Response: "Dr. Reynolds in Cardiology is available tomorrow at 9 AM. Shall I book it?",
		},
		{
			Topic:    "greeting",
			Keywords: []string{"hello", "hi"},
			Response: "Hello. I am the hospital's voice assistant. How can I help you?",
		},
	},
	MicDenied:   "Microphone access denied. Please allow microphone permissions.",
	Unsupported: "Your browser does not support Voice Recognition. Please use Google Chrome or Microsoft Edge on Desktop.",
	EngineFail:  "Failed to initialize voice engine.",
	ErrPrefix:   "Error: ",
}

var hindi = &Table{
	Lang:     "hi",
	Locale:   "hi-IN",
	Welcome:  "नमस्ते! सिटी जनरल अस्पताल में आपका स्वागत है। (Namaste! Welcome to City General Hospital)",
	Fallback: "क्षमा करें, मुझे समझ नहीं आया। कृपया दोबारा कहें। (Sorry, I didn't understand.)",
	Emergency: Rule{
		Topic:    "emergency",
		Keywords: []string{"emergency", "एमरजेंसी", "दर्द", "खून"},
		Response: "कृपया तुरंत 9 1 1 पर कॉल करें। यह एक आपात स्थिति है। (Please call 911 immediately.)",
	},
	Rules: []Rule{
		{
			Topic:    "booking",
			Keywords: []string{"appointment", "अप्वाइंटमेंट", "बुकिंग", "मिलना"},
			Response: "ज़रूर, आपको किस डॉक्टर से मिलना है? (Sure, which doctor do you want to see?)",
		},
		{
			Topic:    "cardiology",
			Keywords: []string{"दिल", "heart", "cardiology", "हृदय"},
			Response: "कल सुबह 10 बजे डॉक्टर उपलब्ध हैं। क्या मैं इसे बुक करूँ? (Doctor is available tomorrow at 10 AM. Book it?)",
		},
		{
			Topic:    "greeting",
			Keywords: []string{"नमस्ते", "namaste", "hello"},
			Response: "नमस्ते! मैं आपकी कैसे मदद कर सकता हूँ? (Namaste! How can I help?)",
		},
	},
	MicDenied:   "माइक्रोफ़ोन एक्सेस अस्वीकृत। कृपया लॉक आइकन 🔒 पर क्लिक करें और अनुमति दें। (Microphone Blocked!)",
	Unsupported: "इस ब्राउज़र में वॉयस सपोर्ट नहीं है। कृपया Chrome का उपयोग करें। (Voice not supported)",
	EngineFail:  "वॉयस इंजन शुरू करने में विफल।",
	ErrPrefix:   "त्रुटि: ",
}

var telugu = &Table{
	Lang:     "te",
	Locale:   "te-IN",
	Welcome:  "నమస్కారం! సిటీ జనరల్ హాస్పిటల్ కి స్వాగతం. (Welcome! Tap mic to speak)",
	Fallback: "క్షమించండి, నాకు అర్థం కాలేదు. మళ్ళీ చెప్పండి. (Sorry, I didn't understand. Please say again.)",
	Emergency: Rule{
		Topic:    "emergency",
		Keywords: []string{"అత్యవసర", "emergency", "నొప్పి"},
		Response: "దయచేసి వెంటనే 9 1 1 కి కాల్ చేయండి. ఇది అత్యవసర పరిస్థితి. (Please call 911 immediately.)",
	},
	Rules: []Rule{
		{
			Topic:    "booking",
			Keywords: []string{"appointment", "అపాయింట్మెంట్", "బుక్", "కావాలి"},
			Response: "అవును, నేను సహాయం చేయగలను. మీకు ఏ డాక్టర్ కావాలి? (Yes, I can help. Which doctor do you need?)",
		},
		{
			Topic:    "cardiology",
			Keywords: []string{"గుండె", "cardiology", "heart"},
			Response: "రేపు ఉదయం 10 గంటలకు డాక్టర్ గారు అందుబాటులో ఉన్నారు. బుక్ చేయమంటారా? (Doctor is available tomorrow at 10 AM. Should I book?)",
		},
		{
			Topic:    "greeting",
			Keywords: []string{"నమస్కారం", "hello"},
			Response: "నమస్కారం! నేను మీ హాస్పిటల్ అసిస్టెంట్ ని. ఎలా సహాయపడగలను? (Namaskaram! How can I help?)",
		},
	},
	MicDenied:   "Microphone Blocked! Please click the Lock 🔒 icon in the address bar and Allow Microphone access.",
	Unsupported: "మీ బ్రౌజర్ లో వాయిస్ సపోర్ట్ లేదు. దయచేసి Chrome ఉపయోగించండి.",
	EngineFail:  "వాయిస్ ఇంజిన్ ప్రారంభించలేకపోయాము.",
	ErrPrefix:   "లోపం: ",
}

var tables = map[string]*Table{
	"en": english,
	"hi": hindi,
	"te": telugu,
}
